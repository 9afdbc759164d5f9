package routes

import (
	"net/http"

	"github.com/neuromap-brasil/neuromap/internal/api/handlers"
	"github.com/neuromap-brasil/neuromap/internal/api/middleware"
	"github.com/neuromap-brasil/neuromap/internal/infrastructure/observability"
	"github.com/neuromap-brasil/neuromap/pkg/config"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler      *handlers.SearchHandler
	geolocationHandler *handlers.GeolocationHandler

	server  config.ServerConfig
	metrics *observability.Metrics
}

// NewRouter creates a new router. geolocationHandler may be nil, in which
// case /api/geocode is not registered.
func NewRouter(
	searchHandler *handlers.SearchHandler,
	geolocationHandler *handlers.GeolocationHandler,
	server config.ServerConfig,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		searchHandler:      searchHandler,
		geolocationHandler: geolocationHandler,
		server:             server,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	limitSearch := middleware.SearchRateLimit(r.server.SearchRateLimit)

	// Search page
	r.mux.HandleFunc("GET /{$}", r.searchHandler.Index)
	r.mux.Handle("POST /search", limitSearch(http.HandlerFunc(r.searchHandler.SubmitForm)))

	// JSON API
	r.mux.Handle("POST /api/search", limitSearch(http.HandlerFunc(r.searchHandler.Search)))
	r.mux.HandleFunc("GET /api/options", r.searchHandler.Options)

	if r.geolocationHandler != nil {
		r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so preflight never reaches the mux
	handler = middleware.CORSMiddleware(r.server.AllowedOrigins)(handler)

	return handler
}
