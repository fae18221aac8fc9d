package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuflow/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"
	cfg.PubSub.Backend = "memory"
	cfg.Identity.PrivateKeyPath = filepath.Join(t.TempDir(), "jwt.pem")
	return cfg
}

func TestManager_InitAndShutdown(t *testing.T) {
	mgr := NewManager(testConfig(t))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, mgr.Init(ctx))
	require.NotNil(t, mgr.Engine())

	// The assembled mux serves the health endpoint.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	mgr.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	mgr.Shutdown(ctx)
}

func TestManager_UnknownBackends(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "cassandra"
	mgr := NewManager(cfg)
	assert.Error(t, mgr.Init(context.Background()))

	cfg = testConfig(t)
	cfg.PubSub.Backend = "kafka"
	mgr = NewManager(cfg)
	assert.Error(t, mgr.Init(context.Background()))
}
