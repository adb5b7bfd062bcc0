package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type PaymentURLResponse struct {
	Provider   entity.PaymentMethod `json:"provider"`
	TxnRef     string               `json:"txn_ref"`
	Amount     int64                `json:"amount"`
	PaymentURL string               `json:"payment_url"`
}

// PaymentReturnResponse is what the browser redirect back from the gateway resolves to
type PaymentReturnResponse struct {
	TxnRef       string               `json:"txn_ref"`
	BookingID    string               `json:"booking_id,omitempty"`
	Success      bool                 `json:"success"`
	ResponseCode string               `json:"response_code"`
	Status       entity.PaymentStatus `json:"status,omitempty"`
	Amount       int64                `json:"amount"`
}

type ZaloPayOrderStatusResponse struct {
	AppTransID    string `json:"app_trans_id"`
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
	IsProcessing  bool   `json:"is_processing"`
	Amount        int64  `json:"amount"`
	ZpTransID     int64  `json:"zp_trans_id"`
	Applied       bool   `json:"applied"`
}

type MerchantPaymentResponse struct {
	ID           string               `json:"id"`
	Provider     entity.PaymentMethod `json:"provider"`
	MerchantCode string               `json:"merchant_code"`
	SecretKey    string               `json:"secret_key"`
	StatusID     entity.StatusID      `json:"status_id"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type CommissionResponse struct {
	ID           string                  `json:"id"`
	OwnerID      string                  `json:"owner_id"`
	FacilityID   string                  `json:"facility_id"`
	FacilityName string                  `json:"facility_name,omitempty"`
	Month        int                     `json:"month"`
	Year         int                     `json:"year"`
	Revenue      int64                   `json:"revenue"`
	Rate         float64                 `json:"rate"`
	Amount       int64                   `json:"amount"`
	Status       entity.CommissionStatus `json:"status"`
	AppTransID   *string                 `json:"app_trans_id,omitempty"`
	ZpTransID    *string                 `json:"zp_trans_id,omitempty"`
	PaidAt       *time.Time              `json:"paid_at,omitempty"`
}

type GenerateCommissionResponse struct {
	Month   int   `json:"month"`
	Year    int   `json:"year"`
	Created int64 `json:"created"`
}

// MerchantToResponse never exposes the secret, only its last four characters
func MerchantToResponse(m *entity.MerchantPayment) MerchantPaymentResponse {
	return MerchantPaymentResponse{
		ID:           m.ID.String(),
		Provider:     m.Provider,
		MerchantCode: m.MerchantCode,
		SecretKey:    MaskSecret(m.SecretKey),
		StatusID:     m.StatusID,
		UpdatedAt:    m.UpdatedAt,
	}
}

func MaskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

func CommissionToResponse(c *entity.CommissionPayment) CommissionResponse {
	return CommissionResponse{
		ID:           c.ID.String(),
		OwnerID:      c.OwnerID.String(),
		FacilityID:   c.FacilityID.String(),
		FacilityName: c.FacilityName,
		Month:        c.Month,
		Year:         c.Year,
		Revenue:      c.Revenue,
		Rate:         c.Rate,
		Amount:       c.Amount,
		Status:       c.Status,
		AppTransID:   c.AppTransID,
		ZpTransID:    c.ZpTransID,
		PaidAt:       c.PaidAt,
	}
}
