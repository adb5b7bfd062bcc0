package entity

import "github.com/google/uuid"

type Court struct {
	Base
	FacilityID   uuid.UUID `db:"facility_id"`
	Name         string    `db:"name"`
	Category     string    `db:"category"`
	PricePerHour int64     `db:"price_per_hour"`
	Description  *string   `db:"description"`
	StatusID     StatusID  `db:"status_id"`
}
