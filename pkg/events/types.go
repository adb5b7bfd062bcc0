package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicBookingStatusChanged = "booking.status_changed"
	TopicCommissionPaid       = "commission.paid"
)

type BookingStatusChanged struct {
	BookingID     uuid.UUID `json:"booking_id"`
	Code          string    `json:"code"`
	UserID        uuid.UUID `json:"user_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	FacilityID    uuid.UUID `json:"facility_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type CommissionPaid struct {
	CommissionID uuid.UUID `json:"commission_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	FacilityID   uuid.UUID `json:"facility_id"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	Amount       int64     `json:"amount"`
	PaidAt       time.Time `json:"paid_at"`
}
