package request

type CreatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	BankCode  string `json:"bank_code,omitempty" validate:"omitempty,alphanum,max=20"`
	Locale    string `json:"locale,omitempty" validate:"omitempty,oneof=vn en"`
}

type MerchantPaymentRequest struct {
	Provider     string `json:"provider" validate:"required,oneof=vnpay"`
	MerchantCode string `json:"merchant_code" validate:"required,max=50"`
	SecretKey    string `json:"secret_key" validate:"required,min=8,max=255"`
	StatusID     int    `json:"status_id,omitempty" validate:"omitempty,oneof=1 2"`
}

type GenerateCommissionRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
}

type CommissionListRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,oneof=pending paid failed"`
	Month  int    `validate:"omitempty,min=1,max=12"`
	Year   int    `validate:"omitempty,min=2000,max=2100"`
}

type CommissionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending failed"`
}
