package response

import (
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/utils"
)

type FacilityResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	District    *string         `json:"district,omitempty"`
	City        *string         `json:"city,omitempty"`
	Description *string         `json:"description,omitempty"`
	Phone       *string         `json:"phone,omitempty"`
	OpenTime    string          `json:"open_time"`
	CloseTime   string          `json:"close_time"`
	ImageURL    *string         `json:"image_url,omitempty"`
	StatusID    entity.StatusID `json:"status_id"`
	AvgRating   float64         `json:"avg_rating"`
	RatingCount int64           `json:"rating_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FacilityDetailResponse is the cached public view of a facility
type FacilityDetailResponse struct {
	FacilityResponse
	Courts      []CourtResponse     `json:"courts"`
	TimeSlots   []TimeSlotResponse  `json:"time_slots"`
	RatingStats RatingStatsResponse `json:"rating_stats"`
}

type CourtResponse struct {
	ID           string          `json:"id"`
	FacilityID   string          `json:"facility_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerHour int64           `json:"price_per_hour"`
	Description  *string         `json:"description,omitempty"`
	StatusID     entity.StatusID `json:"status_id"`
}

type TimeSlotResponse struct {
	ID           string          `json:"id"`
	FacilityID   string          `json:"facility_id"`
	CourtID      *string         `json:"court_id,omitempty"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	DiscountRate int             `json:"discount_rate"`
	StatusID     entity.StatusID `json:"status_id"`
}

func FacilityToResponse(f *entity.Facility) FacilityResponse {
	return FacilityResponse{
		ID:          f.ID.String(),
		OwnerID:     f.OwnerID.String(),
		Name:        f.Name,
		Address:     f.Address,
		District:    f.District,
		City:        f.City,
		Description: f.Description,
		Phone:       f.Phone,
		OpenTime:    utils.ClockString(f.OpenTime),
		CloseTime:   utils.ClockString(f.CloseTime),
		ImageURL:    f.ImageURL,
		StatusID:    f.StatusID,
		AvgRating:   f.AvgRating,
		RatingCount: f.RatingCount,
		CreatedAt:   f.CreatedAt,
	}
}

func CourtToResponse(c *entity.Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID.String(),
		FacilityID:   c.FacilityID.String(),
		Name:         c.Name,
		Category:     c.Category,
		PricePerHour: c.PricePerHour,
		Description:  c.Description,
		StatusID:     c.StatusID,
	}
}

func TimeSlotToResponse(t *entity.TimeSlot) TimeSlotResponse {
	resp := TimeSlotResponse{
		ID:           t.ID.String(),
		FacilityID:   t.FacilityID.String(),
		StartTime:    utils.ClockString(t.StartTime),
		EndTime:      utils.ClockString(t.EndTime),
		DiscountRate: t.DiscountRate,
		StatusID:     t.StatusID,
	}
	if t.CourtID != nil {
		id := t.CourtID.String()
		resp.CourtID = &id
	}
	return resp
}
