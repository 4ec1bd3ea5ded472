package http

import (
	"errors"
	"net/http"

	"github.com/yourfavcrm/crm/internal/crm/service"
	"github.com/yourfavcrm/crm/pkg/httpx"
	"github.com/yourfavcrm/crm/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
	Cookies     cookieSettings
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.AuthService.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "User already exists")
			return
		}
		log.Error("failed to register user", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.Cookies.write(w, token)
	httpx.WriteJSON(w, http.StatusOK, registerResponse{ID: user.ID, Email: user.Email})
}
