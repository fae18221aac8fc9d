package rest

import (
	"errors"
	"net/http"

	"docuflow/internal/identity"
)

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req identity.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.auth.SignUp(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pair)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req identity.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.auth.SignIn(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req identity.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "refreshToken is required")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// writeAuthError keeps credential failures indistinguishable from unknown
// accounts while still surfacing validation problems.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials), errors.Is(err, identity.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid credentials")
	case errors.Is(err, identity.ErrAccountDisabled):
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "Account disabled")
	case err.Error() == "user already exists":
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		// SignUp validation errors (missing username, weak password) land
		// here as plain errors.
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	}
}
