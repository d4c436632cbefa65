package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQRPayload(t *testing.T) {
	payload, err := ParseQRPayload(`{"email":"Ana@Example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", payload.Email)
}

func TestParseQRPayloadRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"{}",
		`{"email":""}`,
		`{"email":"not-an-email"}`,
		`["ana@example.com"]`,
	}

	for _, raw := range cases {
		_, err := ParseQRPayload(raw)
		assert.ErrorIs(t, err, ErrInvalidQRPayload, "payload %q", raw)
	}
}
