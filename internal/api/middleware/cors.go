package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware adds CORS headers to HTTP responses. An empty list allows
// every origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		// X-Model-API-Key carries the caller's model credential on /api/search.
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Model-API-Key"},
		MaxAge:         300,
	})
}
