package rest

import (
	"net/http"

	"docuflow/internal/settings"
)

func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.prefs.Get(r.Context(), actor(r))
	if err != nil {
		writeInternalError(w, err, "Failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs settings.Preferences
	if !decodeJSON(w, r, &prefs) {
		return
	}

	if err := h.prefs.Put(r.Context(), actor(r), prefs); err != nil {
		writeInternalError(w, err, "Failed to save preferences")
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handler) handleResetPreferences(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.Reset(r.Context(), actor(r)); err != nil {
		writeInternalError(w, err, "Failed to reset preferences")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
