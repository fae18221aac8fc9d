package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"docuflow/internal/events"
	"docuflow/internal/pubsub"
)

// Server bridges the change-event bus to websocket clients.
type Server struct {
	hub      *Hub
	consumer pubsub.Consumer
}

// NewServer creates a server consuming from the given bus.
func NewServer(consumer pubsub.Consumer) *Server {
	return &Server{hub: NewHub(), consumer: consumer}
}

// Hub exposes the hub, used by tests.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start runs the hub and pipes bus events into it until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run()

	ch, err := s.consumer.Subscribe(ctx, "changes.>")
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					slog.Info("Realtime: change stream closed")
					return
				}
				change, err := events.Decode(msg.Data())
				if err != nil {
					slog.Warn("Realtime: dropping undecodable change event", "error", err)
					continue
				}
				s.hub.Broadcast(change)
			}
		}
	}()

	return nil
}

// ServeHTTP upgrades websocket requests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ServeWs(s.hub, w, r)
}
