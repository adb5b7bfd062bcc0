package entity

import "github.com/google/uuid"

// MerchantPayment holds a facility owner's own gateway credentials
type MerchantPayment struct {
	BaseNoDelete
	OwnerID      uuid.UUID     `db:"owner_id"`
	Provider     PaymentMethod `db:"provider"`
	MerchantCode string        `db:"merchant_code"`
	SecretKey    string        `db:"secret_key"`
	StatusID     StatusID      `db:"status_id"`
}
