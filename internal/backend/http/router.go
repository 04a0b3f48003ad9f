// Package http wires the service layer to the standard library mux. One file
// per endpoint, with rate limits and authentication applied per route.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hatchery/hatchd/internal/backend/service"
	"github.com/hatchery/hatchd/internal/backend/store"
	"github.com/hatchery/hatchd/pkg/httpx"
	"github.com/hatchery/hatchd/pkg/jwtx"
	"github.com/hatchery/hatchd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService    *service.AuthService
	SessionService *service.SessionService
	ItemService    *service.ItemService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	corsOrigins []string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerItems()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP + username form field to
	// slow credential stuffing against a single account.
	login := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /auth/signup - strict rate limit by IP (public write endpoint)
	signup := &SignupHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/v1/auth/signup",
		httpx.Chain(signup,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/confirm/{token} - moderate rate limit; links get clicked
	// twice all the time
	confirm := &ConfirmHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /api/v1/auth/confirm/{token}",
		httpx.Chain(confirm,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/me - authenticated, lenient limit per subject
	me := &MeHandler{SessionService: r.SessionService}
	r.Mux.Handle("GET /api/v1/auth/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerItems() {
	h := &ItemsHandler{
		ItemService:    r.ItemService,
		SessionService: r.SessionService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitBySubject(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/items", secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/items", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/items/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/items/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/items/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
