package http

import (
	"errors"
	"net/http"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.UserService.ProfileByID(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		// The session can outlive its user if the store file was replaced.
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "User not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to load profile", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profile)
}
