package usecase

import (
	"sync"

	"court-booking/internal/data/repository"
	"court-booking/internal/data/repository/mocks"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
)

type repoMocks struct {
	User            *mocks.UserRepository
	Session         *mocks.SessionRepository
	OTP             *mocks.OTPRepository
	Facility        *mocks.FacilityRepository
	Court           *mocks.CourtRepository
	TimeSlot        *mocks.TimeSlotRepository
	Booking         *mocks.BookingRepository
	Payment         *mocks.PaymentRepository
	Comment         *mocks.CommentRepository
	Rating          *mocks.RatingRepository
	Slider          *mocks.SliderRepository
	Blog            *mocks.BlogRepository
	MerchantPayment *mocks.MerchantPaymentRepository
	Commission      *mocks.CommissionRepository
}

func newRepoMocks() (*repository.Repository, *repoMocks) {
	m := &repoMocks{
		User:            new(mocks.UserRepository),
		Session:         new(mocks.SessionRepository),
		OTP:             new(mocks.OTPRepository),
		Facility:        new(mocks.FacilityRepository),
		Court:           new(mocks.CourtRepository),
		TimeSlot:        new(mocks.TimeSlotRepository),
		Booking:         new(mocks.BookingRepository),
		Payment:         new(mocks.PaymentRepository),
		Comment:         new(mocks.CommentRepository),
		Rating:          new(mocks.RatingRepository),
		Slider:          new(mocks.SliderRepository),
		Blog:            new(mocks.BlogRepository),
		MerchantPayment: new(mocks.MerchantPaymentRepository),
		Commission:      new(mocks.CommissionRepository),
	}

	repo := &repository.Repository{
		User:            m.User,
		Session:         m.Session,
		OTP:             m.OTP,
		Facility:        m.Facility,
		Court:           m.Court,
		TimeSlot:        m.TimeSlot,
		Booking:         m.Booking,
		Payment:         m.Payment,
		Comment:         m.Comment,
		Rating:          m.Rating,
		Slider:          m.Slider,
		Blog:            m.Blog,
		MerchantPayment: m.MerchantPayment,
		Commission:      m.Commission,
	}
	return repo, m
}

// recordingPublisher keeps published topics for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func ownerActor() utils.Actor {
	return utils.Actor{UserID: uuid.New(), Role: "owner"}
}

func customerActor() utils.Actor {
	return utils.Actor{UserID: uuid.New(), Role: "customer"}
}

func adminActor() utils.Actor {
	return utils.Actor{UserID: uuid.New(), Role: "admin"}
}
