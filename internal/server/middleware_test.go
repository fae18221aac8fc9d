package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docuflow/internal/config"
)

func newTestServer(t *testing.T, cors bool, handler http.HandlerFunc) http.Handler {
	t.Helper()
	cfg := config.DefaultConfig().Server
	cfg.CORSEnabled = cors

	mux := http.NewServeMux()
	mux.HandleFunc("/test", handler)
	return New(cfg, mux, nil).Handler()
}

func TestRecoveryMiddleware(t *testing.T) {
	h := newTestServer(t, false, func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := newTestServer(t, false, func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	// Generated when absent.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	// Propagated when present.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "req-123")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestSecurityHeaders(t *testing.T) {
	h := newTestServer(t, false, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestCORSMiddleware(t *testing.T) {
	h := newTestServer(t, true, func(w http.ResponseWriter, r *http.Request) {})

	// Preflight short-circuits.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://app.example")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	// Disabled: no CORS headers.
	h = newTestServer(t, false, func(w http.ResponseWriter, r *http.Request) {})
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://app.example")
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadlineSet bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
	})
	h := TimeoutMiddleware(50 * time.Millisecond)(inner)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, deadlineSet)
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
