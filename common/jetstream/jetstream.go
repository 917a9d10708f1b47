package jetstream

import (
	"context"
	"cudeca-ticket/common/constant"
	"errors"
	"github.com/nats-io/nats.go/jetstream"
	"log/slog"
	"time"
)

const NakDelay = 1 * time.Second

type ConsumerOptions struct {
	Durable       string
	FilterSubject string
	MaxDeliver    int
	AckWait       time.Duration
}

func CreateQueueStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	cfg := jetstream.StreamConfig{
		Name:      constant.QueueStreamName,
		Retention: jetstream.WorkQueuePolicy,
		Subjects:  []string{constant.AllWildcard},
		MaxBytes:  -1,
	}

	return js.CreateOrUpdateStream(ctx, cfg)
}

func CreateQueueConsumer(ctx context.Context, st jetstream.Stream, opts ConsumerOptions) (jetstream.Consumer, error) {
	return st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       opts.Durable,
		FilterSubject: opts.FilterSubject,
		MaxDeliver:    opts.MaxDeliver,
		AckWait:       opts.AckWait,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
}

// Handler processes one message payload. A non-nil error redelivers the message.
type Handler func(ctx context.Context, data []byte) error

// Consume pulls messages from cons and dispatches them by subject until ctx is done.
func Consume(ctx context.Context, cons jetstream.Consumer, handlers map[string]Handler) error {
	iter, err := cons.Messages()
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		iter.Stop()
	}()

	for {
		msg, err := iter.Next()
		if errors.Is(err, jetstream.ErrMsgIteratorClosed) {
			return nil
		}
		if err != nil {
			slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
			continue
		}

		Dispatch(ctx, msg, handlers)
	}
}

// Dispatch runs the handler registered for the message subject, then acks or naks it.
// Messages on subjects without a handler are acked.
func Dispatch(ctx context.Context, msg jetstream.Msg, handlers map[string]Handler) {
	var eventErr error
	if handler, ok := handlers[msg.Subject()]; ok {
		eventErr = handler(ctx, msg.Data())
	} else {
		slog.WarnContext(ctx, "no handler for subject", slog.String("subject", msg.Subject()))
	}

	if eventErr != nil {
		if err := msg.NakWithDelay(NakDelay); err != nil {
			slog.ErrorContext(ctx, "Error rejecting message", slog.Any(constant.LogFieldErr, err), slog.String("subject", msg.Subject()))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		slog.ErrorContext(ctx, "Error acknowledging message",
			slog.Any(constant.LogFieldErr, err),
			slog.Any(constant.LogFieldPayload, string(msg.Data())),
			slog.String("subject", msg.Subject()),
		)
	}
}
