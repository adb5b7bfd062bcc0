package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus := NewBus(zap.NewNop())
	defer bus.Close()

	got := make(chan BookingStatusChanged, 1)
	err := bus.Subscribe(context.Background(), TopicBookingStatusChanged, func(_ context.Context, payload []byte) error {
		var evt BookingStatusChanged
		if err := json.Unmarshal(payload, &evt); err != nil {
			return err
		}
		got <- evt
		return nil
	})
	require.NoError(t, err)

	id := uuid.New()
	require.NoError(t, bus.Publish(TopicBookingStatusChanged, BookingStatusChanged{BookingID: id, NewStatus: "confirmed"}))

	select {
	case evt := <-got:
		assert.Equal(t, id, evt.BookingID)
		assert.Equal(t, "confirmed", evt.NewStatus)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}
