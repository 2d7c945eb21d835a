// Package verification runs the claim verification workflow: score the claim,
// persist the verdict, refresh the claim list.
//
// Each verify action runs one Cycle through an explicit state machine
//
//	Idle -> Scoring -> Persisting -> Refreshing -> Done
//	           \            \
//	            +-> Failed   +-> Failed
//
// The three steps run strictly in order, one outstanding call each, and
// nothing is retried. The Claim Store is never written by the orchestrator
// itself; it only changes through the refresher after the backend has
// acknowledged the verdict, so a failed cycle leaves it exactly as it was.
package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"claimguard/internal/claims/models"
	"claimguard/internal/claims/store"
	"claimguard/internal/platform/metrics"
	"claimguard/internal/platform/tracer"
	"claimguard/pkg/platform/inflight"
	dErrors "claimguard/pkg/domain-errors"
)

// ScoringGateway produces a verdict for a claim's inputs.
type ScoringGateway interface {
	Score(ctx context.Context, description models.ServiceDescription, paidAmount float64) (*models.Verdict, error)
}

// StatusUpdater persists a verdict label on the backend.
type StatusUpdater interface {
	SetClaimStatus(ctx context.Context, id models.ClaimID, status models.Status) error
}

// ClaimRefresher replaces the Claim Store with a fresh server read.
type ClaimRefresher interface {
	Refresh(ctx context.Context) error
}

// ClaimLookup reads the cached claim a cycle starts from.
type ClaimLookup interface {
	Get(id models.ClaimID) (models.Claim, error)
}

// User-facing messages.
const (
	MsgVerifyFailed = "Failed to verify claim. Please try again."
	MsgInFlight     = "Verification already in progress for this claim"
	MsgStale        = "Claim verified, but the claim list could not be refreshed. Reload to see the new status."
)

// DefaultStepTimeout bounds each of the three outstanding calls.
const DefaultStepTimeout = 10 * time.Second

// Orchestrator runs verification cycles. At most one cycle per claim is
// active at a time; cycles for different claims run independently.
type Orchestrator struct {
	scorer    ScoringGateway
	updater   StatusUpdater
	refresher ClaimRefresher
	claims    ClaimLookup
	active    *inflight.Guard

	stepTimeout time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      tracer.Tracer
	now         func() time.Time
	newID       func() uuid.UUID
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithMetrics records cycle outcomes and step durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithTracer sets the tracer. Defaults to a no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithStepTimeout bounds each step. Non-positive values are ignored.
func WithStepTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.stepTimeout = d
		}
	}
}

// WithClock overrides time.Now for transition timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithIDGenerator overrides how cycle IDs are generated.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(o *Orchestrator) {
		o.newID = fn
	}
}

// New creates an orchestrator over its three collaborators and the cache the
// cycles read their inputs from.
func New(scorer ScoringGateway, updater StatusUpdater, refresher ClaimRefresher, claims ClaimLookup, opts ...Option) (*Orchestrator, error) {
	if scorer == nil {
		return nil, errors.New("scoring gateway is required")
	}
	if updater == nil {
		return nil, errors.New("status updater is required")
	}
	if refresher == nil {
		return nil, errors.New("claim refresher is required")
	}
	if claims == nil {
		return nil, errors.New("claim lookup is required")
	}
	o := &Orchestrator{
		scorer:      scorer,
		updater:     updater,
		refresher:   refresher,
		claims:      claims,
		active:      inflight.New(),
		stepTimeout: DefaultStepTimeout,
		logger:      slog.New(slog.DiscardHandler),
		tracer:      tracer.NewNoop(),
		now:         time.Now,
		newID:       uuid.New,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Active reports whether a cycle for id is running. Callers use it to
// disable the verify control for that claim.
func (o *Orchestrator) Active(id models.ClaimID) bool {
	return o.active.Held(id.String())
}

// Verify runs one cycle for the claim and returns it in its terminal state.
//
// A claim that is not cached fails with CodeNotFound and no cycle. A second
// Verify for a claim whose cycle is still running is ignored with
// CodeCycleInFlight and makes no calls. Otherwise the returned cycle is Done
// (error nil, possibly with a Notice) or Failed (error equal to cycle.Err).
//
// Once started, a cycle is detached from ctx cancellation and runs to a
// terminal state; each step is bounded by the step timeout instead.
func (o *Orchestrator) Verify(ctx context.Context, id models.ClaimID) (*Cycle, error) {
	claim, err := o.claims.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "claim not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read claim")
	}

	if !o.active.TryAcquire(id.String()) {
		o.metrics.IncrementCycle(metrics.OutcomeIgnored)
		o.logger.InfoContext(ctx, "verify ignored, cycle in flight", "claim_id", id)
		return nil, dErrors.New(dErrors.CodeCycleInFlight, MsgInFlight)
	}
	defer o.active.Release(id.String())

	ctx = context.WithoutCancel(ctx)
	cycle := newCycle(o.newID(), id, o.now())
	log := o.logger.With("cycle_id", cycle.ID.String(), "claim_id", id.String())

	ctx, span := o.tracer.Start(ctx, tracer.SpanVerifyCycle,
		tracer.String(tracer.AttrCycleID, cycle.ID.String()),
		tracer.String(tracer.AttrClaimID, id.String()),
	)
	o.run(ctx, cycle, claim, log, span)
	span.SetAttributes(tracer.String(tracer.AttrState, string(cycle.State)))
	span.End(cycle.Err)

	if cycle.State == StateFailed {
		o.metrics.IncrementCycle(metrics.OutcomeFailed)
		log.WarnContext(ctx, "verification failed",
			"code", dErrors.CodeOf(cycle.Err),
			"error", errors.Unwrap(cycle.Err),
			"duration_ms", cycle.Duration().Milliseconds(),
		)
		return cycle, cycle.Err
	}
	o.metrics.IncrementCycle(metrics.OutcomeDone)
	log.InfoContext(ctx, "verification done",
		"status", cycle.Verdict.Label,
		"service_code", cycle.Verdict.ServiceCode,
		"stale", cycle.Notice != "",
		"duration_ms", cycle.Duration().Milliseconds(),
	)
	return cycle, nil
}

func (o *Orchestrator) run(ctx context.Context, cycle *Cycle, claim models.Claim, log *slog.Logger, span tracer.Span) {
	// Scoring
	if !o.advance(cycle, StateScoring, log, span) {
		return
	}
	var verdict *models.Verdict
	err := o.step(ctx, StateScoring, tracer.SpanVerifyScore, func(ctx context.Context) error {
		var err error
		verdict, err = o.scorer.Score(ctx, claim.ServiceDescription, claim.Amount.Float64())
		return err
	})
	if err == nil && (verdict == nil || !verdict.Label.IsVerdict()) {
		err = dErrors.New(dErrors.CodeScoringRejected, "scoring service returned no verdict")
	}
	if err != nil {
		o.fail(cycle, scoringCode(err), err, log, span)
		return
	}
	cycle.Verdict = verdict
	span.SetAttributes(tracer.String(tracer.AttrVerdict, string(verdict.Label)))

	// Persisting
	if !o.advance(cycle, StatePersisting, log, span) {
		return
	}
	err = o.step(ctx, StatePersisting, tracer.SpanVerifyPersist, func(ctx context.Context) error {
		return o.updater.SetClaimStatus(ctx, cycle.ClaimID, verdict.Label)
	})
	if err != nil {
		o.fail(cycle, dErrors.CodePersistFailed, err, log, span)
		return
	}

	// Refreshing is best effort.
	if !o.advance(cycle, StateRefreshing, log, span) {
		return
	}
	err = o.step(ctx, StateRefreshing, tracer.SpanVerifyRefresh, o.refresher.Refresh)
	if err != nil {
		cycle.RefreshErr = dErrors.Reclassify(err, dErrors.CodeRefreshFailed, MsgStale)
		cycle.Notice = MsgStale
		o.metrics.IncrementRefreshFailures()
		span.AddEvent(tracer.EventRefreshSkipped)
		log.WarnContext(ctx, "claim list refresh failed after persist", "error", err)
	}
	o.advance(cycle, StateDone, log, span)
}

// step runs one outstanding call under its own deadline.
func (o *Orchestrator) step(ctx context.Context, state State, spanName string, call func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, o.stepTimeout)
	defer cancel()

	ctx, span := o.tracer.Start(ctx, spanName)
	start := o.now()
	err := call(ctx)
	o.metrics.ObserveStep(string(state), o.now().Sub(start))
	span.End(err)
	return err
}

func (o *Orchestrator) advance(cycle *Cycle, to State, log *slog.Logger, span tracer.Span) bool {
	from := cycle.State
	if err := cycle.advance(to, o.now()); err != nil {
		// Only reachable through a programming error; end the cycle visibly.
		cycle.State = StateFailed
		cycle.FinishedAt = o.now()
		cycle.Err = err
		log.Error("verification state machine violated", "error", err)
		return false
	}
	span.AddEvent(tracer.EventTransition,
		tracer.String("from", string(from)),
		tracer.String("to", string(to)),
	)
	log.Debug("cycle transition", "from", from, "to", to)
	return true
}

func (o *Orchestrator) fail(cycle *Cycle, code dErrors.Code, cause error, log *slog.Logger, span tracer.Span) {
	cycle.Err = dErrors.Reclassify(cause, code, MsgVerifyFailed)
	span.SetAttributes(tracer.String(tracer.AttrErrorCode, string(code)))
	o.advance(cycle, StateFailed, log, span)
}

// scoringCode keeps the gateway's classification and treats anything
// unclassified as the scorer being unavailable.
func scoringCode(err error) dErrors.Code {
	switch code := dErrors.CodeOf(err); code {
	case dErrors.CodeScoringRejected, dErrors.CodeScoringUnavailable, dErrors.CodeValidation:
		return code
	default:
		return dErrors.CodeScoringUnavailable
	}
}
