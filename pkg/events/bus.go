// Package events is the in-process domain event bus.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Publisher is what services depend on
type Publisher interface {
	Publish(topic string, payload any) error
}

// Handler processes one event payload; errors are logged and the message is acked
type Handler func(ctx context.Context, payload []byte) error

type Bus struct {
	pubsub *gochannel.GoChannel
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewBus(log *zap.Logger) *Bus {
	log = log.With(zap.String("component", "events"))
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, NewZapAdapter(log))
	return &Bus{pubsub: pubsub, log: log}
}

func (b *Bus) Publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe starts a consumer goroutine for topic; it stops when ctx is done or the bus closes
func (b *Bus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			if err := handler(msg.Context(), msg.Payload); err != nil {
				b.log.Error("Event handler failed",
					zap.String("topic", topic),
					zap.String("message_id", msg.UUID),
					zap.Error(err),
				)
			}
			msg.Ack()
		}
	}()

	return nil
}

func (b *Bus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
