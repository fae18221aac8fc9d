// Package pubsub provides the pub/sub abstraction carrying change events
// between the engine and its consumers. Delivery is best effort: events are
// invalidation hints, and a consumer that misses one simply refetches later.
package pubsub

import "context"

// Message is a received message.
type Message interface {
	// Data returns the raw payload.
	Data() []byte

	// Subject returns the subject the message was published on.
	Subject() string
}

// Publisher publishes messages.
type Publisher interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close releases resources.
	Close() error
}

// Consumer consumes messages matching a subject pattern.
type Consumer interface {
	// Subscribe starts consuming and returns a channel that closes when the
	// context is cancelled.
	Subscribe(ctx context.Context, pattern string) (<-chan Message, error)
}

// Provider creates publishers and consumers for one backend.
type Provider interface {
	NewPublisher() (Publisher, error)
	NewConsumer() (Consumer, error)
	Close() error
}

// ChannelBufSize is the per-subscription buffer; a slow consumer drops
// events rather than blocking publishers.
const ChannelBufSize = 64
