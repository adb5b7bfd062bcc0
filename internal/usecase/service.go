package usecase

import (
	"court-booking/internal/data/repository"
	"court-booking/pkg/cache"
	"court-booking/pkg/events"
	"court-booking/pkg/locker"
	"court-booking/pkg/mailer"
	"court-booking/pkg/media"
	"court-booking/pkg/payment/vnpay"
	"court-booking/pkg/payment/zalopay"
	"court-booking/pkg/token"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

// Infra groups the adapters services use besides the database
type Infra struct {
	Tokens  *token.Manager
	Locker  locker.Locker
	Cache   cache.Cache
	Events  events.Publisher
	Mailer  mailer.Mailer
	Media   *media.Store
	VNPay   *vnpay.Client
	ZaloPay *zalopay.Client
}

type Service struct {
	Auth       AuthService
	User       UserService
	Facility   FacilityService
	Court      CourtService
	TimeSlot   TimeSlotService
	Booking    BookingService
	Payment    PaymentService
	Commission CommissionService
	Merchant   MerchantService
	Comment    CommentService
	Rating     RatingService
	Slider     SliderService
	Blog       BlogService
}

func NewService(repo *repository.Repository, infra *Infra, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, infra.Tokens, infra.Mailer, config, log),
		User:       NewUserService(repo, log),
		Facility:   NewFacilityService(repo, infra.Cache, infra.Locker, infra.Media, log),
		Court:      NewCourtService(repo, infra.Cache, log),
		TimeSlot:   NewTimeSlotService(repo, infra.Cache, infra.Locker, log),
		Booking:    NewBookingService(repo, infra.Locker, infra.Events, config, log),
		Payment:    NewPaymentService(repo, infra.VNPay, infra.ZaloPay, infra.Events, config, log),
		Commission: NewCommissionService(repo, infra.ZaloPay, infra.Events, config, log),
		Merchant:   NewMerchantService(repo, log),
		Comment:    NewCommentService(repo, log),
		Rating:     NewRatingService(repo, infra.Cache, log),
		Slider:     NewSliderService(repo, infra.Cache, infra.Media, log),
		Blog:       NewBlogService(repo, log),
	}
}
