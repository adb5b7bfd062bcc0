package entity

import (
	"time"

	"github.com/google/uuid"
)

type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionPaid    CommissionStatus = "paid"
	CommissionFailed  CommissionStatus = "failed"
)

// CommissionPayment is the platform fee owed by an owner for one facility and month
type CommissionPayment struct {
	BaseNoDelete
	OwnerID    uuid.UUID        `db:"owner_id"`
	FacilityID uuid.UUID        `db:"facility_id"`
	Month      int              `db:"month"`
	Year       int              `db:"year"`
	Revenue    int64            `db:"revenue"`
	Rate       float64          `db:"rate"`
	Amount     int64            `db:"amount"`
	Status     CommissionStatus `db:"status"`
	AppTransID *string          `db:"app_trans_id"`
	ZpTransID  *string          `db:"zp_trans_id"`
	PaidAt     *time.Time       `db:"paid_at"`

	FacilityName string `db:"-"`
}

type CommissionFilter struct {
	OwnerID *uuid.UUID
	Status  string
	Month   int
	Year    int
}
