package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"strings"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// ProcessImageUpload decodes an uploaded image, scales it down to the given
// bounds when needed and re-encodes it. Returns the encoded bytes and the
// content type to store.
func ProcessImageUpload(file multipart.File, filename string, maxWidth, maxHeight uint) ([]byte, string, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, "", err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", ErrUnsupportedImageFormat
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width > maxWidth || height > maxHeight {
		img = resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	switch {
	case format == "png" || strings.HasSuffix(strings.ToLower(filename), ".png"):
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}
}
