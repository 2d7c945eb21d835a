// Package app wires the operator console: one session, two remote services,
// the in-memory stores and the workflows over them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	accountService "claimguard/internal/accounts/service"
	accountStore "claimguard/internal/accounts/store"
	"claimguard/internal/backend"
	claimService "claimguard/internal/claims/service"
	claimStore "claimguard/internal/claims/store"
	"claimguard/internal/console"
	"claimguard/internal/platform/config"
	"claimguard/internal/platform/health"
	"claimguard/internal/platform/metrics"
	"claimguard/internal/platform/tracer"
	"claimguard/internal/scoring"
	"claimguard/internal/session"
	"claimguard/internal/upstream"
	"claimguard/internal/verification"
	"claimguard/pkg/platform/circuit"
	request "claimguard/pkg/platform/middleware/request"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired components. Accounts and AccountStore are nil unless
// the session is an admin.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Session  *session.Session
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Backend *backend.Client
	Scorer  *scoring.Gateway

	ClaimStore   *claimStore.Store
	Claims       *claimService.Service
	Verifier     *verification.Orchestrator
	AccountStore *accountStore.Store
	Accounts     *accountService.Service

	Health *health.Handler
}

type options struct {
	doer upstream.HTTPDoer
	now  func() time.Time
}

// Option customizes wiring, mostly for tests.
type Option func(*options)

// WithHTTPClient routes both remote services through doer.
func WithHTTPClient(doer upstream.HTTPDoer) Option {
	return func(o *options) { o.doer = doer }
}

// WithClock overrides the clock used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New decodes the session from cfg.Token and builds every component. Nothing
// is fetched yet; call Load for the initial read.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	sess, err := session.FromToken(cfg.Token, o.now())
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var tr tracer.Tracer = tracer.NewNoop()
	if cfg.OTelEnabled {
		tr = tracer.NewOTel()
	}

	clientOpts := []upstream.Option{upstream.WithTokenSource(sess), upstream.WithTimeout(cfg.StepTimeout)}
	if o.doer != nil {
		clientOpts = append(clientOpts, upstream.WithHTTPClient(o.doer))
	}
	be := backend.New(cfg.BackendURL, clientOpts...)

	breaker := scoring.NewBreaker(logger, cfg.ScorerFailureThreshold, func(_ string, t circuit.Transition) {
		m.SetScorerHealthy(t.To == circuit.StateClosed)
	})
	m.SetScorerHealthy(true)
	scoringOpts := []upstream.Option{upstream.WithTimeout(cfg.StepTimeout)}
	if o.doer != nil {
		scoringOpts = append(scoringOpts, upstream.WithHTTPClient(o.doer))
	}
	scorer := scoring.New(cfg.ScoringURL,
		scoring.WithLogger(logger),
		scoring.WithBreaker(breaker),
		scoring.WithClientOptions(scoringOpts...),
	)

	claims := claimStore.New()
	claimSvc, err := claimService.New(be, claims, sess,
		claimService.WithLogger(logger),
		claimService.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	verifier, err := verification.New(scorer, be, claimSvc, claims,
		verification.WithLogger(logger),
		verification.WithMetrics(m),
		verification.WithTracer(tr),
		verification.WithStepTimeout(cfg.StepTimeout),
	)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Session:    sess,
		Registry:   reg,
		Metrics:    m,
		Backend:    be,
		Scorer:     scorer,
		ClaimStore: claims,
		Claims:     claimSvc,
		Verifier:   verifier,
		Health:     health.New(),
	}

	if sess.Admin() {
		a.AccountStore = accountStore.New()
		a.Accounts, err = accountService.New(be, a.AccountStore,
			accountService.WithLogger(logger),
			accountService.WithMetrics(m),
			accountService.WithTracer(tr),
			accountService.WithTimeout(cfg.StepTimeout),
		)
		if err != nil {
			return nil, err
		}
	}

	a.registerChecks(o.now)
	return a, nil
}

func (a *App) registerChecks(now func() time.Time) {
	a.Health.RegisterCheck("scorer", func() error {
		if !a.Scorer.Healthy() {
			st := a.Scorer.Breaker()
			return fmt.Errorf("circuit %s after %d consecutive failures", st.State, st.ConsecutiveFailures)
		}
		return nil
	})
	a.Health.RegisterCheck("claims", func() error {
		if _, ok := a.ClaimStore.Loaded(); !ok {
			return errors.New("claims not loaded")
		}
		return nil
	})
	a.Health.RegisterCheck("session", func() error {
		if exp := a.Session.ExpiresAt(); !exp.IsZero() && !now().Before(exp) {
			return errors.New("session expired")
		}
		return nil
	})
}

// Load performs the initial read. Claims and, for admins, accounts are
// fetched concurrently; each store is only replaced by its own successful read.
func (a *App) Load(ctx context.Context) error {
	// No shared cancellation: one failed read must not abort the other.
	var g errgroup.Group
	g.Go(func() error { return a.Claims.Load(ctx) })
	if a.Accounts != nil {
		g.Go(func() error { return a.Accounts.Load(ctx) })
	}
	return g.Wait()
}

// Router builds the console surface.
func (a *App) Router() http.Handler {
	var accounts console.AccountsService
	if a.Accounts != nil {
		accounts = a.Accounts
	}
	h := console.New(a.Claims, a.Verifier, accounts, a.Logger)
	return console.NewRouter(h, console.RouterConfig{
		Health:   a.Health,
		Gatherer: a.Registry,
		Metrics:  request.NewMetrics(a.Registry),
		Logger:   a.Logger,
		// Three steps plus headroom for the console's own work.
		RequestTimeout: 3*a.Config.StepTimeout + 15*time.Second,
	})
}

// Serve runs the console until ctx is cancelled, then shuts down gracefully.
// A failed initial load is logged; the operator can reload from the console.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Load(ctx); err != nil {
		a.Logger.WarnContext(ctx, "initial load failed", "error", err)
	}

	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting console", "addr", a.Config.Addr, "user_id", a.Session.UserID(), "role", a.Session.Role())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down console")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}
