package entity

import "github.com/google/uuid"

type Rating struct {
	BaseNoDelete
	FacilityID uuid.UUID  `db:"facility_id"`
	UserID     uuid.UUID  `db:"user_id"`
	BookingID  *uuid.UUID `db:"booking_id"`
	Stars      int        `db:"stars"`
	Review     *string    `db:"review"`

	AuthorName string `db:"-"`
}

type RatingStats struct {
	Average float64
	Count   int64
	// PerStar[i] counts ratings with i+1 stars
	PerStar [5]int64
}
