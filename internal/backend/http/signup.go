package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /api/v1/auth/signup. The new account starts
// inactive; a confirmation link is emailed to the given address.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.Error(w, http.StatusUnprocessableEntity, "Invalid signup payload: "+err.Error())
		return
	}

	if err := h.AuthService.Signup(ctx, req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.Error(w, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, service.ErrEmailTaken):
			httpx.Error(w, http.StatusBadRequest, "Email already registered")
		default:
			log.Error("signup failed", "err", err)
			httpx.Internal(w, r)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MessageResponse{
		Message: "Account created. Please check your email to confirm your account.",
	})
}
