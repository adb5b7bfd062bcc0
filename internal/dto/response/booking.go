package response

import (
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/utils"
)

type BookingResponse struct {
	ID            string                      `json:"id"`
	Code          string                      `json:"code"`
	UserID        string                      `json:"user_id"`
	FacilityID    string                      `json:"facility_id"`
	CourtID       string                      `json:"court_id"`
	TimeSlotID    string                      `json:"time_slot_id"`
	BookingDate   string                      `json:"booking_date"`
	StartTime     string                      `json:"start_time"`
	EndTime       string                      `json:"end_time"`
	UnitPrice     int64                       `json:"unit_price"`
	DiscountRate  int                         `json:"discount_rate"`
	TotalPrice    int64                       `json:"total_price"`
	Status        entity.BookingStatus        `json:"status"`
	PaymentStatus entity.BookingPaymentStatus `json:"payment_status"`
	PaymentMethod *entity.PaymentMethod       `json:"payment_method,omitempty"`
	Note          *string                     `json:"note,omitempty"`
	PaidAt        *time.Time                  `json:"paid_at,omitempty"`
	CheckedInAt   *time.Time                  `json:"checked_in_at,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// AvailabilityResponse lists every bookable slot of a facility on one date, per court
type AvailabilityResponse struct {
	FacilityID string              `json:"facility_id"`
	Date       string              `json:"date"`
	Courts     []CourtAvailability `json:"courts"`
}

type CourtAvailability struct {
	CourtID      string             `json:"court_id"`
	CourtName    string             `json:"court_name"`
	PricePerHour int64              `json:"price_per_hour"`
	Slots        []SlotAvailability `json:"slots"`
}

type SlotAvailability struct {
	TimeSlotID   string `json:"time_slot_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DiscountRate int    `json:"discount_rate"`
	Price        int64  `json:"price"`
	Booked       bool   `json:"booked"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		Code:          b.Code,
		UserID:        b.UserID.String(),
		FacilityID:    b.FacilityID.String(),
		CourtID:       b.CourtID.String(),
		TimeSlotID:    b.TimeSlotID.String(),
		BookingDate:   b.BookingDate.Format("2006-01-02"),
		StartTime:     utils.ClockString(b.StartTime),
		EndTime:       utils.ClockString(b.EndTime),
		UnitPrice:     b.UnitPrice,
		DiscountRate:  b.DiscountRate,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		Note:          b.Note,
		PaidAt:        b.PaidAt,
		CheckedInAt:   b.CheckedInAt,
		CreatedAt:     b.CreatedAt,
	}
}
