// Package scoring is the gateway to the external fraud-scoring service.
//
// The scorer is a black box behind POST /predict. Its response is validated
// before any field is trusted: a missing HCPCS block, an error payload, or a
// prediction outside the verdict label space is a rejected score, never a
// guessed one.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"claimguard/internal/claims/models"
	"claimguard/internal/upstream"
	"claimguard/pkg/platform/circuit"
	dErrors "claimguard/pkg/domain-errors"
)

// ServiceName identifies the scorer in upstream errors and logs.
const ServiceName = "scoring"

// Gateway scores one claim per call. It holds no per-claim state, so the
// same inputs may be scored any number of times.
type Gateway struct {
	http       *upstream.Client
	clientOpts []upstream.Option
	breaker    *circuit.Breaker
	logger     *slog.Logger
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithLogger sets the logger used for health transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithClientOptions configures the underlying HTTP caller (token, timeout,
// transport).
func WithClientOptions(opts ...upstream.Option) Option {
	return func(g *Gateway) {
		g.clientOpts = append(g.clientOpts, opts...)
	}
}

// WithBreaker replaces the default health breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(g *Gateway) {
		g.breaker = b
	}
}

// New creates a gateway for the scorer rooted at baseURL.
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.http = upstream.New(ServiceName, baseURL, g.clientOpts...)
	if g.breaker == nil {
		g.breaker = circuit.New(ServiceName, circuit.WithOnChange(g.logTransition))
	}
	return g
}

// NewBreaker builds a health breaker that logs its transitions to logger and
// then passes them to each hook.
func NewBreaker(logger *slog.Logger, failureThreshold int, hooks ...func(string, circuit.Transition)) *circuit.Breaker {
	return circuit.New(ServiceName,
		circuit.WithFailureThreshold(failureThreshold),
		circuit.WithOnChange(func(name string, t circuit.Transition) {
			logTransition(logger, name, t)
			for _, hook := range hooks {
				hook(name, t)
			}
		}),
	)
}

type predictRequest struct {
	ServiceDescription string  `json:"service_description"`
	PaidAmount         float64 `json:"paid_amount"`
}

// prediction is one model's answer inside the scorer response.
type prediction struct {
	ServiceCode          flexString `json:"service_code"`
	PaidAmount           *float64   `json:"paid_amount"`
	Prediction           string     `json:"prediction"`
	PredictedProbability *float64   `json:"predicted_probability"`
}

// predictResponse is the scorer's answer. The GAT block is informational and
// not used for the verdict.
type predictResponse struct {
	HCPCS *prediction     `json:"HCPCS"`
	GAT   json.RawMessage `json:"GAT Prediction"`
	Error *string         `json:"error"`
}

// Score asks the scorer for a verdict on one claim's inputs.
//
// Malformed inputs are refused with CodeValidation and never sent. Transport
// failures, timeouts, throttling and bare 5xx crash pages come back as
// CodeScoringUnavailable; any answer without a usable verdict is
// CodeScoringRejected.
func (g *Gateway) Score(ctx context.Context, description models.ServiceDescription, paidAmount float64) (*models.Verdict, error) {
	if err := validateInput(description, paidAmount); err != nil {
		return nil, err
	}

	var resp predictResponse
	err := g.http.Do(ctx, http.MethodPost, "/predict", predictRequest{
		ServiceDescription: description.String(),
		PaidAmount:         paidAmount,
	}, &resp)
	if err != nil {
		if upstream.IsTransient(err) {
			g.breaker.RecordFailure()
			return nil, dErrors.Reclassify(err, dErrors.CodeScoringUnavailable, "scoring service unavailable")
		}
		g.breaker.RecordSuccess()
		return nil, dErrors.Reclassify(err, dErrors.CodeScoringRejected, "scoring service rejected the claim")
	}
	g.breaker.RecordSuccess()

	return verdictFrom(&resp)
}

// Healthy is false once the scorer has failed several times in a row.
// It is a signal only; Score is always attempted.
func (g *Gateway) Healthy() bool {
	return g.breaker.Healthy()
}

// Breaker exposes the health breaker's counters.
func (g *Gateway) Breaker() circuit.Stats {
	return g.breaker.Stats()
}

func validateInput(description models.ServiceDescription, paidAmount float64) error {
	if strings.TrimSpace(description.String()) == "" {
		return dErrors.New(dErrors.CodeValidation, "service description is required")
	}
	if !description.Known() {
		return dErrors.New(dErrors.CodeValidation, "service description is not a recognized service")
	}
	if math.IsNaN(paidAmount) || math.IsInf(paidAmount, 0) || paidAmount < 0 {
		return dErrors.New(dErrors.CodeValidation, "paid amount must be a finite non-negative number")
	}
	return nil
}

func verdictFrom(resp *predictResponse) (*models.Verdict, error) {
	if resp.Error != nil {
		return nil, dErrors.New(dErrors.CodeScoringRejected, "scoring service error: "+*resp.Error)
	}
	if resp.HCPCS == nil {
		return nil, dErrors.New(dErrors.CodeScoringRejected, "scoring response has no HCPCS verdict")
	}
	label, ok := models.ParseVerdictLabel(resp.HCPCS.Prediction)
	if !ok {
		return nil, dErrors.New(dErrors.CodeScoringRejected, "scoring response has no usable prediction: "+resp.HCPCS.Prediction)
	}
	v := &models.Verdict{
		ServiceCode: string(resp.HCPCS.ServiceCode),
		Label:       label,
	}
	if resp.HCPCS.PredictedProbability != nil {
		v.Probability = *resp.HCPCS.PredictedProbability
	}
	return v, nil
}

func (g *Gateway) logTransition(name string, t circuit.Transition) {
	logTransition(g.logger, name, t)
}

func logTransition(logger *slog.Logger, name string, t circuit.Transition) {
	if logger == nil {
		return
	}
	if t.To == circuit.StateOpen {
		logger.Warn("scorer marked unhealthy", "circuit", name, "from", t.From.String(), "to", t.To.String())
		return
	}
	logger.Info("scorer recovered", "circuit", name, "from", t.From.String(), "to", t.To.String())
}

// flexString accepts a JSON string or number. The scorer echoes the service
// code as whatever type it was keyed by.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
