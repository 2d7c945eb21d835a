// Package metrics holds the Prometheus instruments for the verification
// workflows and the local caches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cycle outcomes.
const (
	OutcomeDone     = "done"
	OutcomeFailed   = "failed"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
)

// Store labels.
const (
	StoreClaims   = "claims"
	StoreAccounts = "accounts"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	VerificationCycles      *prometheus.CounterVec   // by outcome
	VerificationStepLatency *prometheus.HistogramVec // by step
	RefreshFailures         prometheus.Counter
	AccountToggles          *prometheus.CounterVec // by outcome
	StoreRecords            *prometheus.GaugeVec   // by store
	ScorerHealthy           prometheus.Gauge
}

// New creates the metrics and registers them on reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		VerificationCycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claimguard_verification_cycles_total",
			Help: "Verification cycles by final outcome",
		}, []string{"outcome"}),
		VerificationStepLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "claimguard_verification_step_duration_seconds",
			Help:    "Duration of each verification step",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"step"}),
		RefreshFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "claimguard_verification_refresh_failures_total",
			Help: "Claim list read-backs that failed after a persisted verdict",
		}),
		AccountToggles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "claimguard_account_toggles_total",
			Help: "Account verification toggles by outcome",
		}, []string{"outcome"}),
		StoreRecords: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "claimguard_store_records",
			Help: "Records currently held by each local store",
		}, []string{"store"}),
		ScorerHealthy: f.NewGauge(prometheus.GaugeOpts{
			Name: "claimguard_scorer_healthy",
			Help: "1 while the scoring service is considered healthy",
		}),
	}
}

// IncrementCycle records the final outcome of a verification cycle.
func (m *Metrics) IncrementCycle(outcome string) {
	if m == nil {
		return
	}
	m.VerificationCycles.WithLabelValues(outcome).Inc()
}

// ObserveStep records how long one verification step took.
func (m *Metrics) ObserveStep(step string, d time.Duration) {
	if m == nil {
		return
	}
	m.VerificationStepLatency.WithLabelValues(step).Observe(d.Seconds())
}

// IncrementRefreshFailures records a read-back that failed after persist.
func (m *Metrics) IncrementRefreshFailures() {
	if m == nil {
		return
	}
	m.RefreshFailures.Inc()
}

// IncrementToggle records the outcome of an account toggle.
func (m *Metrics) IncrementToggle(outcome string) {
	if m == nil {
		return
	}
	m.AccountToggles.WithLabelValues(outcome).Inc()
}

// SetStoreRecords updates the size gauge of one store.
func (m *Metrics) SetStoreRecords(store string, n int) {
	if m == nil {
		return
	}
	m.StoreRecords.WithLabelValues(store).Set(float64(n))
}

// SetScorerHealthy updates the scorer health gauge.
func (m *Metrics) SetScorerHealthy(healthy bool) {
	if m == nil {
		return
	}
	if healthy {
		m.ScorerHealthy.Set(1)
		return
	}
	m.ScorerHealthy.Set(0)
}
