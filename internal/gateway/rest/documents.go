package rest

import (
	"net/http"

	"docuflow/pkg/model"
)

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := h.engine.ListDocuments(r.Context(), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.engine.GetDocument(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var doc model.Document
	if !decodeJSON(w, r, &doc) {
		return
	}

	if err := h.engine.CreateDocument(r.Context(), &doc, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *Handler) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	var doc model.Document
	if !decodeJSON(w, r, &doc) {
		return
	}
	// The URL names the document; the body cannot redirect the write.
	doc.DocumentKey = r.PathValue("key")

	if err := h.engine.UpdateDocument(r.Context(), &doc, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteDocument(r.Context(), r.PathValue("key"), actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	Keys []string `json:"keys"`
}

type bulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

func (h *Handler) handleBulkDeleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Keys) == 0 {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "keys is required")
		return
	}

	deleted, err := h.engine.BulkDeleteDocuments(r.Context(), req.Keys, actor(r))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkDeleteResponse{Deleted: deleted})
}

func (h *Handler) handleApprovalView(w http.ResponseWriter, r *http.Request) {
	view, err := h.engine.ApprovalView(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
