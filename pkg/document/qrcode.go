// Package document renders booking artefacts: check-in QR codes and PDF receipts.
package document

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// BookingQRCode returns a PNG encoding content, size in pixels
func BookingQRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
