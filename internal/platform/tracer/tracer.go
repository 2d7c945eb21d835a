// Package tracer is a small tracing abstraction used by the verification
// workflows.
//
// Workflow code depends on the Tracer interface only. NoopTracer serves tests
// and deployments without a collector; OTelTracer adapts OpenTelemetry.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span and returns a context carrying it.
	//
	//   ctx, span := tr.Start(ctx, tracer.SpanVerifyCycle,
	//       tracer.String(tracer.AttrClaimID, id.String()),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64 creates a float64 attribute.
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanVerifyCycle   = "verification.cycle"
	SpanVerifyScore   = "verification.score"
	SpanVerifyPersist = "verification.persist"
	SpanVerifyRefresh = "verification.refresh"
	SpanAccountToggle = "accounts.toggle"
)

// Attribute keys.
const (
	AttrCycleID    = "cycle.id"
	AttrClaimID    = "claim.id"
	AttrAccountID  = "account.id"
	AttrState      = "cycle.state"
	AttrVerdict    = "verdict.label"
	AttrFlagBefore = "account.verified_before"
	AttrErrorCode  = "error.code"
)

// Event names.
const (
	EventTransition     = "cycle.transition"
	EventRefreshSkipped = "cycle.refresh_failed"
)
