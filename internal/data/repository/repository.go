package repository

import (
	"court-booking/pkg/database"

	"go.uber.org/zap"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

type Repository struct {
	User            UserRepository
	Session         SessionRepository
	OTP             OTPRepository
	Facility        FacilityRepository
	Court           CourtRepository
	TimeSlot        TimeSlotRepository
	Booking         BookingRepository
	Payment         PaymentRepository
	Comment         CommentRepository
	Rating          RatingRepository
	Slider          SliderRepository
	Blog            BlogRepository
	MerchantPayment MerchantPaymentRepository
	Commission      CommissionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:            NewUserRepository(db, log),
		Session:         NewSessionRepository(db, log),
		OTP:             NewOTPRepository(db, log),
		Facility:        NewFacilityRepository(db, log),
		Court:           NewCourtRepository(db, log),
		TimeSlot:        NewTimeSlotRepository(db, log),
		Booking:         NewBookingRepository(db, log),
		Payment:         NewPaymentRepository(db, log),
		Comment:         NewCommentRepository(db, log),
		Rating:          NewRatingRepository(db, log),
		Slider:          NewSliderRepository(db, log),
		Blog:            NewBlogRepository(db, log),
		MerchantPayment: NewMerchantPaymentRepository(db, log),
		Commission:      NewCommissionRepository(db, log),
	}
}
