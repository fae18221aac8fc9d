package rest

import (
	"net/http"

	"docuflow/pkg/model"
)

func (h *Handler) handleListLignes(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := h.engine.ListLignes(r.Context(), r.PathValue("key"), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleCreateLigne(w http.ResponseWriter, r *http.Request) {
	var ligne model.Ligne
	if !decodeJSON(w, r, &ligne) {
		return
	}
	ligne.DocumentKey = r.PathValue("key")

	if err := h.engine.CreateLigne(r.Context(), &ligne, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ligne)
}

func (h *Handler) handleGetLigne(w http.ResponseWriter, r *http.Request) {
	ligne, err := h.engine.GetLigne(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ligne)
}

func (h *Handler) handleUpdateLigne(w http.ResponseWriter, r *http.Request) {
	var ligne model.Ligne
	if !decodeJSON(w, r, &ligne) {
		return
	}
	ligne.LigneKey = r.PathValue("key")

	if err := h.engine.UpdateLigne(r.Context(), &ligne, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ligne)
}

func (h *Handler) handleDeleteLigne(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteLigne(r.Context(), r.PathValue("key"), actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
