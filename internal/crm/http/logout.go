package http

import (
	"net/http"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
	Cookies     cookieSettings
}

// ServeHTTP always succeeds: logging out with no session, an unknown token,
// or even a failing store still clears the cookie and returns 200.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.AuthService.Logout(ctx, cookie.Value); err != nil {
			slogx.FromContext(ctx).Error("failed to clear session", "err", err)
		}
	}

	h.Cookies.clear(w)
	httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
