// Package httpapi exposes the relay and the scorer over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"askrelay/internal/relay"
	"askrelay/internal/scorer"
)

// Forwarder relays raw request bodies to the upstream scoring endpoint.
type Forwarder interface {
	Forward(ctx context.Context, body []byte) (*relay.Response, error)
}

// ScoreService answers prompt requests.
type ScoreService interface {
	Run(ctx context.Context, req map[string]any) ([]scorer.Result, error)
	Ready() bool
}

// newRouter builds the middleware chain shared by both servers.
func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	return r
}

func mountCommon(r chi.Router) {
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)
}

// NewRelayMux serves POST /api/ask in front of fwd.
func NewRelayMux(fwd Forwarder, co CORSOptions) http.Handler {
	r := newRouter()
	if co.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: co.AllowedOrigins,
			AllowedMethods: co.AllowedMethods,
			AllowedHeaders: co.AllowedHeaders,
		}))
	}
	r.Post("/api/ask", askHandler(fwd))
	mountCommon(r)
	return r
}

// NewScoreMux serves POST /score backed by svc.
func NewScoreMux(svc ScoreService) http.Handler {
	r := newRouter()
	r.Post("/score", scoreHandler(svc))
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
	})
	mountCommon(r)
	return r
}
