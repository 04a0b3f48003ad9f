package http

import (
	"errors"
	"net/http"

	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /api/v1/auth/login. Credentials arrive as form
// fields (username, password) and a successful login returns a bearer token.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		httpx.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.AuthService.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.Unauthorized(w, "Incorrect username or password")
		case errors.Is(err, service.ErrAccountNotActivated):
			httpx.Unauthorized(w, "Account not activated. Please confirm your email.")
		default:
			log.Error("login failed", "err", err)
			httpx.Internal(w, r)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, token)
}
