// Package service implements the admin account verification toggle.
//
// The local flag is merged only after the backend acknowledges the toggle.
// The direction of a toggle is derived from the cached flag, and the caller's
// view of that flag must match it; otherwise the request is refused as stale
// before any network call. The backend toggles by ID and does not return the
// new value, so two admins acting at once can still cross each other until
// the next reload.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"claimguard/internal/accounts/models"
	"claimguard/internal/accounts/store"
	"claimguard/internal/platform/metrics"
	"claimguard/internal/platform/tracer"
	"claimguard/internal/upstream"
	"claimguard/pkg/platform/inflight"
	dErrors "claimguard/pkg/domain-errors"
)

// AccountsBackend is the part of the backend this service reads and writes.
type AccountsBackend interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ToggleAccount(ctx context.Context, id models.AccountID) error
}

// User-facing messages.
const (
	msgLoadFailed = "Failed to fetch Users"
	msgInFlight   = "A verification change for this user is already in progress"
	msgStale      = "This user's verification changed since it was displayed. Reload and try again."
)

// DefaultTimeout bounds the toggle call.
const DefaultTimeout = 10 * time.Second

// ToggleResult is the acknowledged outcome of a toggle.
type ToggleResult struct {
	AccountID models.AccountID
	Verified  bool
	Message   string
}

// Service loads accounts and toggles their verification.
type Service struct {
	backend AccountsBackend
	store   *store.Store
	active  *inflight.Guard
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics records toggle outcomes and store size.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithTimeout bounds the toggle call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates the accounts service.
func New(backend AccountsBackend, st *store.Store, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("accounts backend is required")
	}
	if st == nil {
		return nil, errors.New("account store is required")
	}
	s := &Service{
		backend: backend,
		store:   st,
		active:  inflight.New(),
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load reads the account list into the store, newest first.
func (s *Service) Load(ctx context.Context) error {
	return s.read(ctx, "load")
}

// Refresh re-reads the account list, discarding every local merge.
func (s *Service) Refresh(ctx context.Context) error {
	return s.read(ctx, "refresh")
}

func (s *Service) read(ctx context.Context, reason string) error {
	accounts, err := s.backend.ListAccounts(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "account read failed",
			"reason", reason,
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return dErrors.Reclassify(err, dErrors.CodeRefreshFailed, msgLoadFailed)
	}
	// The server lists oldest first.
	slices.Reverse(accounts)
	s.store.Replace(accounts)
	s.metrics.SetStoreRecords(metrics.StoreAccounts, s.store.Len())
	s.logger.DebugContext(ctx, "accounts replaced", "reason", reason, "count", len(accounts))
	return nil
}

// List returns the cached accounts, newest first.
func (s *Service) List() []models.Account {
	return s.store.Snapshot()
}

// Active reports whether a toggle for id is awaiting the server.
func (s *Service) Active(id models.AccountID) bool {
	return s.active.Held(id.String())
}

// Toggle flips one account's verification. currentFlag is the value the
// caller displayed when the action was taken.
//
// On acknowledgement the cached flag becomes !currentFlag. On any failure the
// cache is left untouched. A second toggle for the same account while one is
// awaiting the server is ignored with CodeCycleInFlight.
func (s *Service) Toggle(ctx context.Context, id models.AccountID, currentFlag bool) (result *ToggleResult, err error) {
	if !s.active.TryAcquire(id.String()) {
		s.metrics.IncrementToggle(metrics.OutcomeIgnored)
		s.logger.InfoContext(ctx, "toggle ignored, already in flight", "account_id", id)
		return nil, dErrors.New(dErrors.CodeCycleInFlight, msgInFlight)
	}
	defer s.active.Release(id.String())

	// The flag is compared under the guard so a toggle that lost the race to
	// an acknowledged one sees the merged value.
	acct, err := s.store.Get(id)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "account not found")
	}
	if acct.IsVerified != currentFlag {
		s.metrics.IncrementToggle(metrics.OutcomeRejected)
		return nil, dErrors.New(dErrors.CodeConflict, msgStale)
	}

	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), tracer.SpanAccountToggle,
		tracer.String(tracer.AttrAccountID, id.String()),
		tracer.Bool(tracer.AttrFlagBefore, currentFlag),
	)
	defer func() { span.End(err) }()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.backend.ToggleAccount(callCtx, id); err != nil {
		s.metrics.IncrementToggle(metrics.OutcomeFailed)
		s.logger.WarnContext(ctx, "account toggle failed",
			"account_id", id,
			"verified", currentFlag,
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return nil, dErrors.Reclassify(err, dErrors.CodeToggleFailed,
			fmt.Sprintf("Failed to %s User", models.Verb(currentFlag)))
	}

	next := !currentFlag
	if err := s.store.Patch(id, func(a *models.Account) { a.IsVerified = next }); err != nil {
		// A full reload replaced the list while the call was out; it already
		// reflects the server.
		s.logger.InfoContext(ctx, "toggled account no longer cached", "account_id", id)
	}
	s.metrics.IncrementToggle(metrics.OutcomeDone)
	s.logger.InfoContext(ctx, "account toggled", "account_id", id, "verified", next)

	return &ToggleResult{
		AccountID: id,
		Verified:  next,
		Message:   fmt.Sprintf("User %s successfully", models.PastTense(currentFlag)),
	}, nil
}
