// Package qr renders join deep links as scannable PNG images.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Render encodes text as a PNG QR image.
func Render(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}
	return png, nil
}
