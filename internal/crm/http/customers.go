package http

import (
	"errors"
	"net/http"

	"github.com/yourfavcrm/crm/internal/crm/domain"
	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

type CustomersHandler struct {
	CustomerService *service.CustomerService
}

func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customers, err := h.CustomerService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list customers", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, customers)
}

func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.CustomerPatch
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.CustomerService.Create(ctx, httpx.UserIDFromContext(ctx), input)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create customer", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, created)
}

func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch domain.CustomerPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.CustomerService.Update(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to update customer", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *CustomersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	removed, err := h.CustomerService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete customer", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, removed)
}
