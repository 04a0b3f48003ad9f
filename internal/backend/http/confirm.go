package http

import (
	"errors"
	"net/http"

	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

type ConfirmHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles GET /api/v1/auth/confirm/{token}. Revisiting an already
// consumed link reports success again rather than an error.
func (h *ConfirmHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	res, err := h.AuthService.Confirm(ctx, r.PathValue("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidConfirmationToken):
			httpx.Error(w, http.StatusBadRequest, "Invalid confirmation token")
		case errors.Is(err, service.ErrConfirmationTokenExpired):
			httpx.Error(w, http.StatusBadRequest, "Confirmation token has expired")
		default:
			log.Error("confirm failed", "err", err)
			httpx.Internal(w, r)
		}
		return
	}

	msg := "Account confirmed successfully"
	if res.AlreadyConfirmed {
		msg = "Account already confirmed"
	}
	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: msg})
}
