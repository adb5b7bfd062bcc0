package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is one gateway transaction attempt for a booking
type Payment struct {
	BaseNoDelete
	BookingID     uuid.UUID     `db:"booking_id"`
	Provider      PaymentMethod `db:"provider"`
	TxnRef        string        `db:"txn_ref"`
	Amount        int64         `db:"amount"`
	Status        PaymentStatus `db:"status"`
	ProviderTxnNo *string       `db:"provider_txn_no"`
	ResponseCode  *string       `db:"response_code"`
	PaidAt        *time.Time    `db:"paid_at"`
}
