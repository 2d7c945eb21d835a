// Package service keeps the Claim Store in step with the backend for the
// signed-in actor.
//
// Reviewers (admin, doctor) read every claim; everyone else reads only their
// own. Every successful read replaces the whole store unless a read issued
// after it has already landed.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"claimguard/internal/claims/models"
	"claimguard/internal/claims/store"
	"claimguard/internal/platform/metrics"
	"claimguard/internal/upstream"
	dErrors "claimguard/pkg/domain-errors"
)

// ClaimsBackend is the part of the backend this service reads and writes.
type ClaimsBackend interface {
	ListClaims(ctx context.Context) ([]models.Claim, error)
	ListClaimsByUser(ctx context.Context, userID models.UserID) ([]models.Claim, error)
	SubmitClaim(ctx context.Context, userID models.UserID, req models.SubmitRequest) (string, error)
}

// Actor is the signed-in user the claim list is scoped to.
type Actor interface {
	UserID() models.UserID
	Reviewer() bool
}

// User-facing messages.
const (
	msgLoadFailed   = "Failed to fetch claims"
	msgSubmitFailed = "An error occurred"
	noticeStale     = "Claim submitted, but the claim list could not be refreshed. Reload to see it."
)

// SubmitResult is the outcome of a successful submission. Notice is set when
// the follow-up refresh failed.
type SubmitResult struct {
	Message string
	Notice  string
}

// Service loads, refreshes and submits claims.
type Service struct {
	backend ClaimsBackend
	store   *store.Store
	actor   Actor
	logger  *slog.Logger
	metrics *metrics.Metrics

	// issued numbers reads in the order they reach the backend. applied is
	// the newest ticket written to the store; mu guards it together with the
	// Replace so that check and write are one step.
	issued  atomic.Uint64
	mu      sync.Mutex
	applied uint64
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics records store sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New creates a claims service bound to one actor.
func New(backend ClaimsBackend, st *store.Store, actor Actor, opts ...Option) (*Service, error) {
	if backend == nil {
		return nil, errors.New("claims backend is required")
	}
	if st == nil {
		return nil, errors.New("claim store is required")
	}
	if actor == nil {
		return nil, errors.New("actor is required")
	}
	s := &Service{
		backend: backend,
		store:   st,
		actor:   actor,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load performs the initial read into an empty store.
func (s *Service) Load(ctx context.Context) error {
	return s.read(ctx, "load")
}

// Refresh re-reads the actor's claims and replaces the store. On failure the
// store keeps its previous snapshot and CodeRefreshFailed is returned.
func (s *Service) Refresh(ctx context.Context) error {
	return s.read(ctx, "refresh")
}

func (s *Service) read(ctx context.Context, reason string) error {
	var (
		claims []models.Claim
		err    error
	)
	ticket := s.issued.Add(1)
	if s.actor.Reviewer() {
		claims, err = s.backend.ListClaims(ctx)
	} else {
		claims, err = s.backend.ListClaimsByUser(ctx, s.actor.UserID())
	}
	if err != nil {
		s.logger.WarnContext(ctx, "claim read failed",
			"reason", reason,
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return dErrors.Reclassify(err, dErrors.CodeRefreshFailed, msgLoadFailed)
	}

	if !s.apply(ticket, claims) {
		s.logger.DebugContext(ctx, "superseded claim read dropped",
			"reason", reason,
			"ticket", ticket,
		)
		return nil
	}
	s.metrics.SetStoreRecords(metrics.StoreClaims, s.store.Len())
	s.logger.DebugContext(ctx, "claims replaced",
		"reason", reason,
		"count", s.store.Len(),
		"version", s.store.Version(),
	)
	return nil
}

// apply replaces the store with claims unless a later-issued read already did.
// A read that returns out of order carries an older server state than the
// one cached, so writing it would revert persisted statuses.
func (s *Service) apply(ticket uint64, claims []models.Claim) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied {
		return false
	}
	s.store.Replace(claims)
	s.applied = ticket
	return true
}

// Submit files a new claim for the actor and then refreshes the store.
// A failed refresh does not fail the submission; it sets Notice instead.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) (*SubmitResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.backend.SubmitClaim(ctx, s.actor.UserID(), req)
	if err != nil {
		s.logger.WarnContext(ctx, "claim submit failed",
			"category", upstream.CategoryOf(err),
			"error", err,
		)
		return nil, upstream.ToDomain(err, msgSubmitFailed)
	}

	result := &SubmitResult{Message: msg}
	if err := s.Refresh(ctx); err != nil {
		result.Notice = noticeStale
	}
	return result, nil
}

// List returns the cached claims in server order.
func (s *Service) List() []models.Claim {
	return s.store.Snapshot()
}

// Get returns one cached claim.
func (s *Service) Get(id models.ClaimID) (models.Claim, error) {
	c, err := s.store.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Claim{}, dErrors.New(dErrors.CodeNotFound, "claim not found")
	}
	return c, err
}
