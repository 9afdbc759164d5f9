package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// SearchRateLimit limits each client IP to perMinute searches. Every search
// spends the caller's model quota, so bursts from one address are cut off
// early. A non-positive limit returns next unchanged.
func SearchRateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(perMinute, time.Minute)
}
