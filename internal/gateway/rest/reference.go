package rest

import (
	"context"
	"net/http"
	"time"

	"docuflow/internal/engine"
	"docuflow/pkg/model"
)

// registerReferenceRoutes wires the read-mostly lookup tables behind
// /api/v1/reference. Reads are open to any signed-in user; writes come from
// the ERP import job running with the admin role.
func (h *Handler) registerReferenceRoutes(mux *http.ServeMux, timeout time.Duration, bodyLimit int64) {
	mux.HandleFunc("GET /api/v1/reference/document-types", withTimeout(h.protected(h.handleListDocumentTypes), timeout))
	mux.HandleFunc("PUT /api/v1/reference/document-types/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutDocumentType), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/document-types/{code}", withTimeout(h.adminOnly(h.handleDeleteDocumentType), timeout))

	mux.HandleFunc("GET /api/v1/reference/items", withTimeout(h.protected(h.handleListItems), timeout))
	mux.HandleFunc("PUT /api/v1/reference/items/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutItem), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/items/{code}", withTimeout(h.adminOnly(h.handleDeleteItem), timeout))

	mux.HandleFunc("GET /api/v1/reference/accounts", withTimeout(h.protected(h.handleListAccounts), timeout))
	mux.HandleFunc("PUT /api/v1/reference/accounts/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutAccount), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/accounts/{code}", withTimeout(h.adminOnly(h.handleDeleteAccount), timeout))

	mux.HandleFunc("GET /api/v1/reference/vendors", withTimeout(h.protected(h.handleListVendors), timeout))
	mux.HandleFunc("PUT /api/v1/reference/vendors/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutVendor), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/vendors/{code}", withTimeout(h.adminOnly(h.handleDeleteVendor), timeout))

	mux.HandleFunc("GET /api/v1/reference/customers", withTimeout(h.protected(h.handleListCustomers), timeout))
	mux.HandleFunc("PUT /api/v1/reference/customers/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutCustomer), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/customers/{code}", withTimeout(h.adminOnly(h.handleDeleteCustomer), timeout))

	mux.HandleFunc("GET /api/v1/reference/locations", withTimeout(h.protected(h.handleListLocations), timeout))
	mux.HandleFunc("PUT /api/v1/reference/locations/{code}", withTimeout(maxBodySize(h.adminOnly(h.handlePutLocation), bodyLimit), timeout))
	mux.HandleFunc("DELETE /api/v1/reference/locations/{code}", withTimeout(h.adminOnly(h.handleDeleteLocation), timeout))
}

// listReference parses the list query and writes one page of a lookup table.
func listReference[T any](w http.ResponseWriter, r *http.Request, list func(context.Context, engine.ListRequest) (engine.ListResult[T], error)) {
	req, err := parseListRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid list query")
		return
	}

	page, err := list(r.Context(), req)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) handleListDocumentTypes(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListDocumentTypes)
}

func (h *Handler) handlePutDocumentType(w http.ResponseWriter, r *http.Request) {
	var row model.DocumentType
	if !decodeJSON(w, r, &row) {
		return
	}
	row.TypeKey = r.PathValue("code")

	if err := h.engine.PutDocumentType(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteDocumentType(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteDocumentType(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListItems)
}

func (h *Handler) handlePutItem(w http.ResponseWriter, r *http.Request) {
	var row model.Item
	if !decodeJSON(w, r, &row) {
		return
	}
	row.Code = r.PathValue("code")

	if err := h.engine.PutItem(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteItem(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListAccounts)
}

func (h *Handler) handlePutAccount(w http.ResponseWriter, r *http.Request) {
	var row model.GeneralAccount
	if !decodeJSON(w, r, &row) {
		return
	}
	row.Code = r.PathValue("code")

	if err := h.engine.PutAccount(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteAccount(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListVendors)
}

func (h *Handler) handlePutVendor(w http.ResponseWriter, r *http.Request) {
	var row model.Vendor
	if !decodeJSON(w, r, &row) {
		return
	}
	row.Code = r.PathValue("code")

	if err := h.engine.PutVendor(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteVendor(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListCustomers)
}

func (h *Handler) handlePutCustomer(w http.ResponseWriter, r *http.Request) {
	var row model.Customer
	if !decodeJSON(w, r, &row) {
		return
	}
	row.Code = r.PathValue("code")

	if err := h.engine.PutCustomer(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteCustomer(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	listReference(w, r, h.engine.ListLocations)
}

func (h *Handler) handlePutLocation(w http.ResponseWriter, r *http.Request) {
	var row model.Location
	if !decodeJSON(w, r, &row) {
		return
	}
	row.Code = r.PathValue("code")

	if err := h.engine.PutLocation(r.Context(), &row); err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.DeleteLocation(r.Context(), r.PathValue("code")); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
