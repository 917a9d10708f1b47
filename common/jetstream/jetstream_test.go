package jetstream

import (
	"context"
	"errors"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

type fakeMsg struct {
	jetstream.Msg

	subject  string
	data     []byte
	acked    bool
	nakDelay time.Duration
}

func (m *fakeMsg) Subject() string { return m.subject }
func (m *fakeMsg) Data() []byte    { return m.data }

func (m *fakeMsg) Ack() error {
	m.acked = true
	return nil
}

func (m *fakeMsg) NakWithDelay(delay time.Duration) error {
	m.nakDelay = delay
	return nil
}

func TestDispatch(t *testing.T) {
	var received []byte
	handlers := map[string]Handler{
		"events.order.fulfilled": func(_ context.Context, data []byte) error {
			received = data
			return nil
		},
		"events.order.refunded": func(context.Context, []byte) error {
			return errors.New("database unavailable")
		},
	}

	tests := []struct {
		name      string
		subject   string
		wantAck   bool
		wantNak   bool
		wantBytes []byte
	}{
		{name: "handled message is acked", subject: "events.order.fulfilled", wantAck: true, wantBytes: []byte(`{"order_id":1}`)},
		{name: "failed message is redelivered", subject: "events.order.refunded", wantNak: true},
		{name: "unknown subject is acked", subject: "events.order.unknown", wantAck: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			received = nil
			msg := &fakeMsg{subject: tc.subject, data: []byte(`{"order_id":1}`)}

			Dispatch(context.Background(), msg, handlers)

			assert.Equal(t, tc.wantAck, msg.acked)
			if tc.wantNak {
				assert.Equal(t, NakDelay, msg.nakDelay)
			} else {
				assert.Zero(t, msg.nakDelay)
			}
			assert.Equal(t, tc.wantBytes, received)
		})
	}
}
