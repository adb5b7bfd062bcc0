package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"court-booking/pkg/events"
	"court-booking/pkg/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscriber is the consuming side of the event bus
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler events.Handler) error
}

// Pusher delivers a message to every open connection of a user
type Pusher interface {
	SendToUser(userID uuid.UUID, msg realtime.Message) int
}

// NotificationService forwards domain events to the customers and owners they concern
type NotificationService struct {
	pusher Pusher
	log    *zap.Logger
}

func NewNotificationService(pusher Pusher, log *zap.Logger) *NotificationService {
	return &NotificationService{
		pusher: pusher,
		log:    log.With(zap.String("service", "notification")),
	}
}

// Start subscribes to every topic; consumers stop when ctx is cancelled
func (s *NotificationService) Start(ctx context.Context, sub Subscriber) error {
	if err := sub.Subscribe(ctx, events.TopicBookingStatusChanged, s.onBookingStatusChanged); err != nil {
		return err
	}
	if err := sub.Subscribe(ctx, events.TopicCommissionPaid, s.onCommissionPaid); err != nil {
		return err
	}
	return nil
}

func (s *NotificationService) onBookingStatusChanged(_ context.Context, payload []byte) error {
	var evt events.BookingStatusChanged
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("decode booking event: %w", err)
	}

	msg := realtime.Message{Type: events.TopicBookingStatusChanged, Data: evt}
	delivered := s.pusher.SendToUser(evt.UserID, msg)
	if evt.OwnerID != uuid.Nil && evt.OwnerID != evt.UserID {
		delivered += s.pusher.SendToUser(evt.OwnerID, msg)
	}

	s.log.Debug("Booking notification pushed",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("status", evt.NewStatus),
		zap.Int("connections", delivered))
	return nil
}

func (s *NotificationService) onCommissionPaid(_ context.Context, payload []byte) error {
	var evt events.CommissionPaid
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("decode commission event: %w", err)
	}

	delivered := s.pusher.SendToUser(evt.OwnerID, realtime.Message{Type: events.TopicCommissionPaid, Data: evt})

	s.log.Debug("Commission notification pushed",
		zap.String("commission_id", evt.CommissionID.String()),
		zap.Int("connections", delivered))
	return nil
}
