package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func slot(start, end int) *TimeSlot {
	return &TimeSlot{Base: Base{ID: uuid.New()}, StartTime: start, EndTime: end, StatusID: StatusActive}
}

func TestTimeSlotOverlaps(t *testing.T) {
	s := slot(7*60, 8*60)

	cases := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"identical", 420, 480, true},
		{"inside", 430, 470, true},
		{"covering", 400, 500, true},
		{"straddles start", 400, 430, true},
		{"straddles end", 470, 500, true},
		{"adjacent before", 360, 420, false},
		{"adjacent after", 480, 540, false},
		{"disjoint", 600, 660, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Overlaps(tc.start, tc.end))
		})
	}
}

func TestFindOverlap(t *testing.T) {
	a := slot(420, 480)
	b := slot(480, 540)
	inactive := slot(540, 600)
	inactive.StatusID = StatusInactive
	slots := []*TimeSlot{a, b, inactive}

	assert.Equal(t, a, FindOverlap(slots, 450, 470, uuid.Nil))
	assert.Nil(t, FindOverlap(slots, 450, 470, a.ID), "a slot does not conflict with itself")
	assert.Nil(t, FindOverlap(slots, 550, 580, uuid.Nil), "inactive slots are ignored")
	assert.Equal(t, b, FindOverlap(slots, 470, 600, a.ID))
}

func TestTimeSlotAppliesTo(t *testing.T) {
	court := uuid.New()
	s := slot(420, 480)
	assert.True(t, s.AppliesTo(court))

	other := uuid.New()
	s.CourtID = &other
	assert.False(t, s.AppliesTo(court))
	assert.True(t, s.AppliesTo(other))
}

func TestCalculatePrice(t *testing.T) {
	assert.Equal(t, int64(100000), CalculatePrice(100000, 60, 0))
	assert.Equal(t, int64(135000), CalculatePrice(100000, 90, 10))
	assert.Equal(t, int64(0), CalculatePrice(100000, 60, 100))
	assert.Equal(t, int64(41667), CalculatePrice(50000, 50, 0))
}

func TestBookingStartsAt(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	b := &Booking{BookingDate: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), StartTime: 7*60 + 30}
	assert.Equal(t, time.Date(2024, 3, 6, 7, 30, 0, 0, loc), b.StartsAt(loc))
}

func TestFacilityCovers(t *testing.T) {
	f := &Facility{OpenTime: 360, CloseTime: 1320}
	assert.True(t, f.Covers(360, 420))
	assert.True(t, f.Covers(1260, 1320))
	assert.False(t, f.Covers(300, 420))
	assert.False(t, f.Covers(1260, 1380))
}
