package request

type FacilityRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=150"`
	Address     string  `json:"address" validate:"required,max=255"`
	District    *string `json:"district,omitempty" validate:"omitempty,max=100"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,phone"`
	OpenTime    string  `json:"open_time" validate:"required,clock"`
	CloseTime   string  `json:"close_time" validate:"required,clock"`
}

type FacilityListRequest struct {
	PaginatedRequest
	Keyword  string `validate:"omitempty,max=100"`
	City     string `validate:"omitempty,max=100"`
	District string `validate:"omitempty,max=100"`
}

type FacilityStatusRequest struct {
	StatusID int `json:"status_id" validate:"required,oneof=1 2 4"`
}

type CourtRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Category     string  `json:"category" validate:"required,max=50"`
	PricePerHour int64   `json:"price_per_hour" validate:"required,gt=0"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	StatusID     int     `json:"status_id,omitempty" validate:"omitempty,oneof=1 2"`
}

type TimeSlotRequest struct {
	CourtID      *string `json:"court_id,omitempty" validate:"omitempty,uuid"`
	StartTime    string  `json:"start_time" validate:"required,clock"`
	EndTime      string  `json:"end_time" validate:"required,clock"`
	DiscountRate int     `json:"discount_rate" validate:"gte=0,lte=100"`
	StatusID     int     `json:"status_id,omitempty" validate:"omitempty,oneof=1 2"`
}
