// Package services assembles the application: storage, event bus, engine,
// identity, realtime and the HTTP server, in dependency order.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"docuflow/internal/config"
	"docuflow/internal/engine"
	"docuflow/internal/facets"
	"docuflow/internal/gateway/rest"
	"docuflow/internal/identity"
	"docuflow/internal/logging"
	"docuflow/internal/pubsub"
	pubsubmem "docuflow/internal/pubsub/memory"
	pubsubnats "docuflow/internal/pubsub/nats"
	"docuflow/internal/realtime"
	"docuflow/internal/server"
	"docuflow/internal/settings"
	"docuflow/internal/storage"
	storagemem "docuflow/internal/storage/memory"
	storagemongo "docuflow/internal/storage/mongo"
)

type Manager struct {
	cfg *config.Config

	backend  storage.Backend
	bus      pubsub.Provider
	engine   *engine.Engine
	auth     *identity.AuthService
	prefs    *settings.Store
	realtime *realtime.Server
	server   *server.Server
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Engine exposes the engine, used by tests and seeding tools.
func (m *Manager) Engine() *engine.Engine {
	return m.engine
}

// Init builds every service in dependency order. On error the partially
// built services are torn down by Shutdown, which tolerates nil fields.
func (m *Manager) Init(ctx context.Context) error {
	backend, err := m.newBackend(ctx)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	m.backend = backend

	bus, err := m.newBus(ctx)
	if err != nil {
		return fmt.Errorf("pubsub: %w", err)
	}
	m.bus = bus

	publisher, err := bus.NewPublisher()
	if err != nil {
		return fmt.Errorf("pubsub publisher: %w", err)
	}

	compiler, err := facets.NewCompiler()
	if err != nil {
		return fmt.Errorf("facet compiler: %w", err)
	}
	extraFacets, err := compiler.CompileAll(m.cfg.Facets)
	if err != nil {
		return fmt.Errorf("facet config: %w", err)
	}

	m.engine = engine.New(backend, engine.Options{
		Publisher:       publisher,
		ExtraFacets:     extraFacets,
		DefaultPageSize: m.cfg.Gateway.DefaultPageSize,
		MaxPageSize:     m.cfg.Gateway.MaxPageSize,
	})

	m.auth, err = identity.NewAuthService(identity.Config{
		PrivateKeyPath:  m.cfg.Identity.PrivateKeyPath,
		AccessTokenTTL:  m.cfg.Identity.AccessTokenTTL,
		RefreshTokenTTL: m.cfg.Identity.RefreshTokenTTL,
		MinPasswordLen:  m.cfg.Identity.MinPasswordLen,
	}, backend.Users())
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	m.prefs = settings.NewStore(backend.Settings())

	consumer, err := bus.NewConsumer()
	if err != nil {
		return fmt.Errorf("pubsub consumer: %w", err)
	}
	m.realtime = realtime.NewServer(consumer)

	mux := http.NewServeMux()
	handler := rest.NewHandler(m.engine, m.auth, m.prefs, m.cfg.Gateway)
	handler.RegisterRoutes(mux)
	mux.Handle("GET /ws", m.realtime)

	m.server = server.New(m.cfg.Server, mux, slog.Default())
	return nil
}

// Start runs the realtime bridge and the HTTP server. It blocks until the
// server stops.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.realtime.Start(ctx); err != nil {
		return fmt.Errorf("realtime: %w", err)
	}
	slog.Info("Server starting",
		"host", m.cfg.Server.Host,
		"port", m.cfg.Server.Port,
		"storage", m.cfg.Storage.Backend,
		"pubsub", m.cfg.PubSub.Backend,
	)
	return m.server.Run()
}

// Shutdown stops the HTTP server and releases storage and bus connections.
func (m *Manager) Shutdown(ctx context.Context) {
	if m.server != nil {
		if err := m.server.Shutdown(ctx); err != nil {
			slog.Warn("HTTP server shutdown failed", "error", err)
		}
	}
	if m.bus != nil {
		if err := m.bus.Close(); err != nil {
			slog.Warn("Event bus close failed", "error", err)
		}
	}
	if m.backend != nil {
		if err := m.backend.Close(ctx); err != nil {
			slog.Warn("Storage close failed", "error", err)
		}
	}
	if err := logging.Shutdown(); err != nil {
		slog.Warn("Log shutdown failed", "error", err)
	}
}

func (m *Manager) newBackend(ctx context.Context) (storage.Backend, error) {
	switch m.cfg.Storage.Backend {
	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, m.cfg.Storage.Mongo.Timeout)
		defer cancel()
		return storagemongo.NewBackend(connectCtx, m.cfg.Storage.Mongo.URI, m.cfg.Storage.Mongo.DatabaseName)
	case "memory":
		return storagemem.NewBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", m.cfg.Storage.Backend)
	}
}

func (m *Manager) newBus(ctx context.Context) (pubsub.Provider, error) {
	switch m.cfg.PubSub.Backend {
	case "nats":
		provider := pubsubnats.NewProvider(m.cfg.PubSub.NatsURL)
		if err := provider.Connect(ctx); err != nil {
			return nil, err
		}
		return provider, nil
	case "memory":
		return pubsubmem.NewEngine(), nil
	default:
		return nil, fmt.Errorf("unknown pubsub backend %q", m.cfg.PubSub.Backend)
	}
}
