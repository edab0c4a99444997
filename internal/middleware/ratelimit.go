package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimitHandler returns a middleware that admits at most rps requests
// per second with bursts of up to burst. Requests over the budget get 429.
// Non-positive arguments fall back to 100 rps and a burst of 10.
func NewRateLimitHandler(log *slog.Logger, rps, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 10
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.WarnContext(r.Context(), "rate limit exceeded",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
