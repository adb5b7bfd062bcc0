package request

type CreateBookingRequest struct {
	CourtID     string  `json:"court_id" validate:"required,uuid"`
	TimeSlotID  string  `json:"time_slot_id" validate:"required,uuid"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Note        *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type BookingListRequest struct {
	PaginatedRequest
	Date   string `validate:"omitempty,datetime=2006-01-02"`
	Status string `validate:"omitempty,oneof=pending confirmed completed cancelled expired"`
}

// UpdateBookingStatusRequest is the owner side transition; mark_paid records a cash payment
type UpdateBookingStatusRequest struct {
	Action string `json:"action" validate:"required,oneof=confirm complete cancel mark_paid"`
}

type CheckInRequest struct {
	Code string `json:"code" validate:"required,max=40"`
}
