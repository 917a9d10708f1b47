package contract

//go:generate mockgen -destination=mocks/publisher.go -package=mocks . Publisher

import (
	"context"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher is the publishing half of jetstream.JetStream.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}
