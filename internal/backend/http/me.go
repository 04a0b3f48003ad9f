package http

import (
	"errors"
	"net/http"

	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

type MeHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP handles GET /api/v1/auth/me. Token verification has already
// happened in middleware; this resolves the subject back to its account.
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	subject := httpx.SubjectFromCtx(ctx)
	if subject == "" {
		httpx.Unauthorized(w, "Not authenticated")
		return
	}

	u, err := h.SessionService.ResolveSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSubject) {
			httpx.Unauthorized(w, "Could not validate credentials")
			return
		}
		log.Error("subject lookup failed", "err", err)
		httpx.Internal(w, r)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserResponse{
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	})
}
