package main

import (
	"net/http"

	"github.com/HammerMeetNail/quizdash/internal/handlers"
	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/middleware"
)

type routes struct {
	pages     *handlers.PageHandler
	api       *handlers.APIHandler
	health    *handlers.HealthHandler
	auth      *middleware.BasicAuth
	csrf      *middleware.CSRFMiddleware
	refresh   *middleware.RateLimiter
	staticDir string
}

// newRouter registers every route and wraps the mux in the shared chain.
// Health and static assets are public; everything else requires the operator.
func newRouter(r routes, secure bool, logger *logging.Logger) http.Handler {
	protect := func(h http.HandlerFunc) http.Handler {
		return r.auth.RequireAuth(r.csrf.Protect(h))
	}

	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", r.health.Health)
	mux.HandleFunc("GET /ready", r.health.Ready)
	mux.HandleFunc("GET /live", r.health.Live)

	mux.Handle("GET /{$}", protect(r.pages.Index))
	mux.Handle("POST /refresh", r.auth.RequireAuth(r.csrf.Protect(r.refresh.Middleware(http.HandlerFunc(r.pages.Refresh)))))

	mux.Handle("GET /api/csrf", r.auth.RequireAuth(http.HandlerFunc(r.csrf.GetToken)))
	mux.Handle("GET /api/responses", protect(r.api.Responses))
	mux.Handle("GET /api/responses/export", protect(r.api.Export))
	mux.Handle("GET /api/stats", protect(r.api.Stats))
	mux.Handle("POST /api/refresh", r.auth.RequireAuth(r.csrf.Protect(r.refresh.Middleware(http.HandlerFunc(r.api.Refresh)))))

	fs := http.FileServer(http.Dir(r.staticDir))
	mux.Handle("GET /static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", r.pages.NotFound)

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = middleware.NewCacheControl().Apply(handler)
	handler = middleware.NewCompress().Apply(handler)
	handler = middleware.NewSecurityHeaders(secure).Apply(handler)
	handler = middleware.NewRequestLogger(logger).Apply(handler)
	return handler
}
