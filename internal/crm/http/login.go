package http

import (
	"errors"
	"net/http"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     cookieSettings
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	_, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the client.
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to log in user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Cookies.write(w, token)
	httpx.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
