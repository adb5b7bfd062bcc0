package document

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingQRCode(t *testing.T) {
	data, err := BookingQRCode("BK-20240306-4K7Q2M", 128)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestRenderReceipt(t *testing.T) {
	paid := time.Date(2024, 3, 6, 10, 5, 0, 0, time.UTC)
	data, err := RenderReceipt(Receipt{
		Code:          "BK-20240306-4K7Q2M",
		CustomerName:  "Nguyễn Văn A",
		FacilityName:  "Sân Cầu Lông Đống Đa",
		CourtName:     "Sân 1",
		Date:          time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		StartTime:     "07:00",
		EndTime:       "08:30",
		UnitPrice:     100000,
		DiscountRate:  10,
		Total:         135000,
		Status:        "confirmed",
		PaymentStatus: "paid",
		PaymentMethod: "vnpay",
		PaidAt:        &paid,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
