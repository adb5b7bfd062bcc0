package entity

import "github.com/google/uuid"

type TimeSlot struct {
	Base
	FacilityID   uuid.UUID  `db:"facility_id"`
	CourtID      *uuid.UUID `db:"court_id"`
	StartTime    int        `db:"start_time"` // minutes of day
	EndTime      int        `db:"end_time"`
	DiscountRate int        `db:"discount_rate"`
	StatusID     StatusID   `db:"status_id"`
}

// Overlaps uses half-open intervals, so 07:00-08:00 and 08:00-09:00 do not overlap
func (t *TimeSlot) Overlaps(start, end int) bool {
	return t.StartTime < end && start < t.EndTime
}

func (t *TimeSlot) Minutes() int {
	return t.EndTime - t.StartTime
}

// AppliesTo reports whether the slot can be booked on courtID
func (t *TimeSlot) AppliesTo(courtID uuid.UUID) bool {
	return t.CourtID == nil || *t.CourtID == courtID
}

// FindOverlap returns the first active slot in slots intersecting [start, end), skipping exclude
func FindOverlap(slots []*TimeSlot, start, end int, exclude uuid.UUID) *TimeSlot {
	for _, s := range slots {
		if s.ID == exclude || s.StatusID != StatusActive {
			continue
		}
		if s.Overlaps(start, end) {
			return s
		}
	}
	return nil
}
