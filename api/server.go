// ABOUTME: HTTP server assembly for the updates API
// ABOUTME: Wires CORS, logging, rate limiting, and auth around the resource handler

package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"legacy-updates-api/api/handlers"
	"legacy-updates-api/api/middleware"
	"legacy-updates-api/core/interfaces"
)

// UpdatesPath is the single resource path of the API
const UpdatesPath = "/api/updates"

// ServerConfig holds the assembly configuration for the API
type ServerConfig struct {
	Logger      interfaces.Logger
	EditorToken string
	RateLimit   int           // requests per window, 0 disables
	RateWindow  time.Duration // rate limit window
}

// NewHandler builds the full HTTP handler for the API.
// All responses carry permissive cross-origin headers and preflights are
// answered 200 before reaching the resource handler.
func NewHandler(cfg ServerConfig, queries handlers.QueryService, writes handlers.WriteService) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(UpdatesPath, handlers.NewUpdatesHandler(queries, writes, cfg.Logger))

	var handler http.Handler = mux

	handler = middleware.EditorAuthMiddleware(cfg.EditorToken)(handler)

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		handler = middleware.RateLimitMiddleware(limiter)(handler)
	}

	if cfg.Logger != nil {
		handler = middleware.RequestLoggingMiddleware(cfg.Logger)(handler)
	}

	// CORS sits outermost so even rate-limited responses stay readable
	// cross-origin.
	corsLayer := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version",
			"Content-Length", "Content-MD5", "Content-Type", "Date",
			"X-Api-Version", "Authorization",
		},
		AllowCredentials:     true,
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusOK,
	})

	return corsLayer.Handler(handler)
}
