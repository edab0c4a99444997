// Package proxy implements the development proxy that sits in front of the
// Flight Planner backend. It forwards API traffic to the backend, serves the
// embedded OpenAPI document, and applies the shared middleware stack.
package proxy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/flightplanner/client/internal/middleware"
	"github.com/flightplanner/client/spec"
)

// DefaultMaxBodyBytes leaves room for a 2 MiB avatar plus multipart framing.
const DefaultMaxBodyBytes = 4 << 20

// Forwarded lists the path prefixes sent to the backend.
var Forwarded = []string{"/api", "/health", "/api-docs", "/swagger-ui"}

// Options configures the proxy handler.
type Options struct {
	// Backend is the base URL requests are forwarded to. Required.
	Backend *url.URL

	// CORSOrigins are the browser origins allowed to call the proxy.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst size the token bucket shared by all
	// clients. Non-positive values use the middleware defaults.
	RateLimitRPS   int
	RateLimitBurst int

	// Logger receives request and proxy error logs. Nil means slog.Default().
	Logger *slog.Logger
}

// New returns the proxy's root handler.
func New(opts Options) (http.Handler, error) {
	if opts.Backend == nil || opts.Backend.Scheme == "" || opts.Backend.Host == "" {
		return nil, errors.New("proxy.New: backend URL must be absolute")
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	limit := opts.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	backend := newReverseProxy(opts.Backend, log)

	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → body cap → rate limit. The limiter runs last so
	// rejected requests are still logged with their request ID.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(limit))
	r.Use(middleware.NewRateLimitHandler(log, opts.RateLimitRPS, opts.RateLimitBurst))

	r.Get("/healthz", handleHealthz)
	r.Get("/openapi.yaml", handleOpenAPI)

	for _, prefix := range Forwarded {
		r.Handle(prefix, backend)
		r.Handle(prefix+"/*", backend)
	}

	return r, nil
}

// newReverseProxy forwards to target, rewriting the Host header to the
// backend's and setting the X-Forwarded-* headers.
func newReverseProxy(target *url.URL, log *slog.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "backend request failed",
				"path", r.URL.Path,
				"error", err,
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
			writeJSON(w, http.StatusBadGateway, map[string]string{"message": "Backend unavailable"})
		},
	}
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
