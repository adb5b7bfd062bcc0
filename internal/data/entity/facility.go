package entity

import "github.com/google/uuid"

type Facility struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	District    *string   `db:"district"`
	City        *string   `db:"city"`
	Description *string   `db:"description"`
	Phone       *string   `db:"phone"`
	OpenTime    int       `db:"open_time"`  // minutes of day
	CloseTime   int       `db:"close_time"` // minutes of day
	ImageURL    *string   `db:"image_url"`
	StatusID    StatusID  `db:"status_id"`

	// read model, filled by list queries
	AvgRating   float64 `db:"-"`
	RatingCount int64   `db:"-"`
}

// Covers reports whether [start, end) lies inside opening hours
func (f *Facility) Covers(start, end int) bool {
	return start >= f.OpenTime && end <= f.CloseTime
}

type FacilityFilter struct {
	Keyword  string
	City     string
	District string
	OwnerID  *uuid.UUID
	// ActiveOnly hides inactive and banned facilities
	ActiveOnly bool
}
