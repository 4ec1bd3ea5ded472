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

type DealsHandler struct {
	DealService *service.DealService
}

func (h *DealsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deals, err := h.DealService.List(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list deals", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, deals)
}

func (h *DealsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.DealPatch
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.DealService.Create(ctx, httpx.UserIDFromContext(ctx), input)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create deal", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, created)
}

func (h *DealsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch domain.DealPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.DealService.Update(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to update deal", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *DealsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	removed, err := h.DealService.Delete(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete deal", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, removed)
}
