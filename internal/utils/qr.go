package utils

import (
	"encoding/json"
	"errors"
	"strings"
)

// QRPayload is the JSON object encoded into a customer's QR code.
type QRPayload struct {
	Email string `json:"email"`
}

var ErrInvalidQRPayload = errors.New("invalid QR payload")

// ParseQRPayload decodes the scanned QR text. The only contract is a JSON
// object with a non-empty email field.
func ParseQRPayload(payload string) (*QRPayload, error) {
	var decoded QRPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, ErrInvalidQRPayload
	}

	decoded.Email = strings.ToLower(strings.TrimSpace(decoded.Email))
	if decoded.Email == "" || !IsValidEmail(decoded.Email) {
		return nil, ErrInvalidQRPayload
	}

	return &decoded, nil
}
