package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aradsms/wa_sender/internal/wa_sender_service/app"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries everything NewRouter wires together.
type RouterOptions struct {
	Dispatcher         *app.DispatchService
	Sessions           *session.Store
	Logger             *slog.Logger
	CORSAllowedOrigins []string
	MetricsEnabled     bool
}

// NewRouter assembles the UI, the JSON API, health and metrics endpoints.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	if opts.MetricsEnabled {
		r.Use(PrometheusMetricsMiddleware)
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "WhatsApp sender service is healthy"})
	})

	NewFormHandler(opts.Dispatcher, opts.Sessions, opts.Logger).RegisterRoutes(r)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		NewMessageHandler(opts.Dispatcher, opts.Logger).RegisterRoutes(v1)
	})

	return r
}
