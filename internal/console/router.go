package console

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"claimguard/internal/platform/health"
	request "claimguard/pkg/platform/middleware/request"
	"claimguard/pkg/platform/validation"
)

const (
	// DefaultRequestTimeout covers a full verify cycle of three default-length steps.
	DefaultRequestTimeout = 45 * time.Second
)

// RouterConfig collects what NewRouter mounts besides the console handler.
type RouterConfig struct {
	Health   *health.Handler
	Gatherer prometheus.Gatherer
	Metrics  *request.Metrics
	Logger   *slog.Logger

	// RequestTimeout bounds each console request; zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// NewRouter assembles the console surface with its middleware chain.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.ClientInfo)
	r.Use(request.Logger(logger))
	r.Use(request.Latency(cfg.Metrics))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(timeout))
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(validation.MaxBodySize))
		h.Register(r)
	})
	return r
}
