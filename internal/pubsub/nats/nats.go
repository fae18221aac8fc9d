// Package nats is the NATS-backed pubsub provider used when multiple
// docuflow nodes share one event bus. Change events are fire-and-forget
// invalidation hints, so core NATS (no JetStream persistence) is enough.
package nats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"docuflow/internal/pubsub"
)

// Provider manages the NATS connection lifecycle.
type Provider struct {
	url string
	nc  *nats.Conn
}

var _ pubsub.Provider = (*Provider)(nil)

// NewProvider creates a provider for the given server URL. Connect must be
// called before creating publishers or consumers.
func NewProvider(url string) *Provider {
	return &Provider{url: url}
}

// Connect establishes the NATS connection.
func (p *Provider) Connect(ctx context.Context) error {
	nc, err := nats.Connect(p.url, nats.Name("docuflow"))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS at %s: %w", p.url, err)
	}
	p.nc = nc
	slog.Info("Connected to NATS", "url", p.url)
	return nil
}

// NewPublisher implements pubsub.Provider.
func (p *Provider) NewPublisher() (pubsub.Publisher, error) {
	if p.nc == nil {
		return nil, fmt.Errorf("NATS not connected, call Connect first")
	}
	return &publisher{nc: p.nc}, nil
}

// NewConsumer implements pubsub.Provider.
func (p *Provider) NewConsumer() (pubsub.Consumer, error) {
	if p.nc == nil {
		return nil, fmt.Errorf("NATS not connected, call Connect first")
	}
	return &consumer{nc: p.nc}, nil
}

// Close closes the NATS connection.
func (p *Provider) Close() error {
	if p.nc != nil {
		slog.Info("Closing NATS connection...")
		p.nc.Close()
		p.nc = nil
	}
	return nil
}

type publisher struct {
	nc *nats.Conn
}

func (p *publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (p *publisher) Close() error {
	// Connection is owned by the provider.
	return nil
}

type consumer struct {
	nc *nats.Conn
}

func (c *consumer) Subscribe(ctx context.Context, pattern string) (<-chan pubsub.Message, error) {
	ch := make(chan pubsub.Message, pubsub.ChannelBufSize)

	sub, err := c.nc.Subscribe(pattern, func(msg *nats.Msg) {
		select {
		case ch <- &message{msg: msg}:
		default:
			// Slow consumer: drop, the subscriber refetches on the next hint.
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", pattern, err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("NATS unsubscribe failed", "pattern", pattern, "error", err)
		}
		close(ch)
	}()

	return ch, nil
}

type message struct {
	msg *nats.Msg
}

func (m *message) Data() []byte    { return m.msg.Data }
func (m *message) Subject() string { return m.msg.Subject }
