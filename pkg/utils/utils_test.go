package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
}

type clockRequest struct {
	Start string `validate:"required,clock"`
	Phone string `validate:"omitempty,phone"`
}

func TestValidateStructCustomTags(t *testing.T) {
	assert.Nil(t, ValidateStruct(clockRequest{Start: "07:30", Phone: "0912345678"}))

	errs := ValidateStruct(clockRequest{Start: "7:30", Phone: "12ab"})
	assert.Equal(t, "Must be a time of day in HH:MM format", errs["Start"])
	assert.Equal(t, "Invalid phone number", errs["Phone"])
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestPaymentWindow(t *testing.T) {
	assert.Equal(t, 15*time.Minute, (&Config{}).PaymentWindow())

	config := &Config{
		VNPay:   VNPayConfig{ExpireMinutes: 20},
		ZaloPay: ZaloPayConfig{ExpireMinutes: 30},
	}
	assert.Equal(t, 30*time.Minute, config.PaymentWindow())
}
