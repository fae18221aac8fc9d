// Package rest is the HTTP surface of the document engine. Handlers are
// thin: they decode the request, call the engine and translate its errors
// into the structured APIError envelope the front-end expects.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"docuflow/internal/config"
	"docuflow/internal/engine"
	"docuflow/internal/identity"
	"docuflow/internal/settings"
	"docuflow/pkg/model"
)

type Handler struct {
	engine *engine.Engine
	auth   identity.Service
	prefs  *settings.Store
	cfg    config.GatewayConfig
}

func NewHandler(eng *engine.Engine, auth identity.Service, prefs *settings.Store, cfg config.GatewayConfig) *Handler {
	if auth == nil {
		panic("auth service cannot be nil")
	}
	return &Handler{
		engine: eng,
		auth:   auth,
		prefs:  prefs,
		cfg:    cfg,
	}
}

// APIError represents a structured error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodePreconditionFailed = "PRECONDITION_FAILED"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// writeError writes a structured JSON error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		slog.Warn("Failed to encode error response", "error", err)
	}
}

// writeInternalError writes an internal error response, but first checks if
// the error is due to client cancellation (returns 499 instead of 500).
func writeInternalError(w http.ResponseWriter, err error, message string) {
	if model.IsCanceled(err) {
		w.WriteHeader(499) // Client Closed Request
		return
	}
	slog.Error(message, "error", err)
	writeError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// writeStorageError maps storage sentinels to HTTP statuses.
func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "Record not found")
	case errors.Is(err, model.ErrExists):
		writeError(w, http.StatusConflict, ErrCodeConflict, "Record already exists")
	case errors.Is(err, model.ErrPreconditionFailed):
		writeError(w, http.StatusPreconditionFailed, ErrCodePreconditionFailed, "Version conflict")
	case errors.Is(err, model.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		writeInternalError(w, err, "Internal storage error")
	}
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// decodeJSON decodes the request body into v. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// withTimeout wraps a handler with a context timeout
func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

func (h *Handler) protected(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.auth.Middleware(handler).ServeHTTP(w, r)
	}
}

// adminOnly requires a valid token carrying the admin role.
func (h *Handler) adminOnly(handler http.HandlerFunc) http.HandlerFunc {
	return h.protected(func(w http.ResponseWriter, r *http.Request) {
		if !identity.HasRole(r.Context(), model.RoleAdmin) {
			writeError(w, http.StatusForbidden, ErrCodeForbidden, "Admin role required")
			return
		}
		handler(w, r)
	})
}

// actor returns the authenticated user key for audit fields.
func actor(r *http.Request) string {
	return identity.UserIDFromContext(r.Context())
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	timeout := h.cfg.RequestTimeout
	bodyLimit := h.cfg.MaxBodySize

	// Auth
	mux.HandleFunc("POST /auth/v1/signup", withTimeout(maxBodySize(h.handleSignUp, bodyLimit), timeout))
	mux.HandleFunc("POST /auth/v1/login", withTimeout(maxBodySize(h.handleLogin, bodyLimit), timeout))
	mux.HandleFunc("POST /auth/v1/refresh", withTimeout(maxBodySize(h.handleRefresh, bodyLimit), timeout))

	// Documents
	mux.HandleFunc("GET /api/v1/documents", withTimeout(h.protected(h.handleListDocuments), timeout))
	mux.HandleFunc("POST /api/v1/documents", withTimeout(maxBodySize(h.protected(h.handleCreateDocument), bodyLimit), timeout))
	mux.HandleFunc("POST /api/v1/documents/bulk-delete", withTimeout(maxBodySize(h.protected(h.handleBulkDeleteDocuments), bodyLimit), timeout))
	mux.HandleFunc("GET /api/v1/documents/{key}", withTimeout(h.protected(h.handleGetDocument), timeout))
	mux.HandleFunc("PUT /api/v1/documents/{key}", withTimeout(maxBodySize(h.protected(h.handleUpdateDocument), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/documents/{key}", withTimeout(h.protected(h.handleDeleteDocument), timeout))
	mux.HandleFunc("GET /api/v1/documents/{key}/approval", withTimeout(h.protected(h.handleApprovalView), timeout))

	// Lignes (nested under their document for list/create)
	mux.HandleFunc("GET /api/v1/documents/{key}/lignes", withTimeout(h.protected(h.handleListLignes), timeout))
	mux.HandleFunc("POST /api/v1/documents/{key}/lignes", withTimeout(maxBodySize(h.protected(h.handleCreateLigne), bodyLimit), timeout))
	mux.HandleFunc("GET /api/v1/lignes/{key}", withTimeout(h.protected(h.handleGetLigne), timeout))
	mux.HandleFunc("PUT /api/v1/lignes/{key}", withTimeout(maxBodySize(h.protected(h.handleUpdateLigne), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/lignes/{key}", withTimeout(h.protected(h.handleDeleteLigne), timeout))

	// Workflow circuits, steps and statuses
	mux.HandleFunc("GET /api/v1/circuits", withTimeout(h.protected(h.handleListCircuits), timeout))
	mux.HandleFunc("POST /api/v1/circuits", withTimeout(maxBodySize(h.adminOnly(h.handleCreateCircuit), bodyLimit), timeout))
	mux.HandleFunc("GET /api/v1/circuits/{key}", withTimeout(h.protected(h.handleGetCircuit), timeout))
	mux.HandleFunc("PUT /api/v1/circuits/{key}", withTimeout(maxBodySize(h.adminOnly(h.handleUpdateCircuit), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/circuits/{key}", withTimeout(h.adminOnly(h.handleDeleteCircuit), timeout))
	mux.HandleFunc("GET /api/v1/circuits/{key}/steps", withTimeout(h.protected(h.handleListSteps), timeout))
	mux.HandleFunc("POST /api/v1/circuits/{key}/steps", withTimeout(maxBodySize(h.adminOnly(h.handleCreateStep), bodyLimit), timeout))
	mux.HandleFunc("GET /api/v1/circuits/{key}/statuses", withTimeout(h.protected(h.handleListStatuses), timeout))
	mux.HandleFunc("POST /api/v1/circuits/{key}/statuses", withTimeout(maxBodySize(h.adminOnly(h.handleCreateStatus), bodyLimit), timeout))
	mux.HandleFunc("GET /api/v1/steps/{key}", withTimeout(h.protected(h.handleGetStep), timeout))
	mux.HandleFunc("PUT /api/v1/steps/{key}", withTimeout(maxBodySize(h.adminOnly(h.handleUpdateStep), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/steps/{key}", withTimeout(h.adminOnly(h.handleDeleteStep), timeout))
	mux.HandleFunc("GET /api/v1/statuses/{key}", withTimeout(h.protected(h.handleGetStatus), timeout))
	mux.HandleFunc("PUT /api/v1/statuses/{key}", withTimeout(maxBodySize(h.adminOnly(h.handleUpdateStatus), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/statuses/{key}", withTimeout(h.adminOnly(h.handleDeleteStatus), timeout))

	// Reference data (reads for everyone, writes admin only)
	h.registerReferenceRoutes(mux, timeout, bodyLimit)

	// Per-user list preferences
	mux.HandleFunc("GET /api/v1/settings/preferences", withTimeout(h.protected(h.handleGetPreferences), timeout))
	mux.HandleFunc("PUT /api/v1/settings/preferences", withTimeout(maxBodySize(h.protected(h.handlePutPreferences), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/settings/preferences", withTimeout(h.protected(h.handleResetPreferences), timeout))

	// Health Check (no auth, minimal timeout)
	mux.HandleFunc("GET /health", withTimeout(h.handleHealth, 5*time.Second))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
