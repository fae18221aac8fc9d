package rest

import (
	"net/http"

	"docuflow/pkg/model"
)

func (h *Handler) handleListCircuits(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := h.engine.ListCircuits(r.Context(), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	circuit, err := h.engine.GetCircuit(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circuit)
}

func (h *Handler) handleCreateCircuit(w http.ResponseWriter, r *http.Request) {
	var circuit model.Circuit
	if !decodeJSON(w, r, &circuit) {
		return
	}

	if err := h.engine.CreateCircuit(r.Context(), &circuit, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, circuit)
}

func (h *Handler) handleUpdateCircuit(w http.ResponseWriter, r *http.Request) {
	var circuit model.Circuit
	if !decodeJSON(w, r, &circuit) {
		return
	}
	circuit.CircuitKey = r.PathValue("key")

	if err := h.engine.UpdateCircuit(r.Context(), &circuit, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, circuit)
}

func (h *Handler) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteCircuit(r.Context(), r.PathValue("key"), actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSteps(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := h.engine.ListSteps(r.Context(), r.PathValue("key"), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetStep(w http.ResponseWriter, r *http.Request) {
	step, err := h.engine.GetStep(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *Handler) handleCreateStep(w http.ResponseWriter, r *http.Request) {
	var step model.Step
	if !decodeJSON(w, r, &step) {
		return
	}
	step.CircuitKey = r.PathValue("key")

	if err := h.engine.CreateStep(r.Context(), &step, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, step)
}

func (h *Handler) handleUpdateStep(w http.ResponseWriter, r *http.Request) {
	var step model.Step
	if !decodeJSON(w, r, &step) {
		return
	}
	step.StepKey = r.PathValue("key")

	if err := h.engine.UpdateStep(r.Context(), &step, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *Handler) handleDeleteStep(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteStep(r.Context(), r.PathValue("key"), actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListStatuses(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := h.engine.ListStatuses(r.Context(), r.PathValue("key"), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.engine.GetStatus(r.Context(), r.PathValue("key"))
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var status model.Status
	if !decodeJSON(w, r, &status) {
		return
	}
	status.CircuitKey = r.PathValue("key")

	if err := h.engine.CreateStatus(r.Context(), &status, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, status)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var status model.Status
	if !decodeJSON(w, r, &status) {
		return
	}
	status.StatusKey = r.PathValue("key")

	if err := h.engine.UpdateStatus(r.Context(), &status, actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteStatus(r.Context(), r.PathValue("key"), actor(r)); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
