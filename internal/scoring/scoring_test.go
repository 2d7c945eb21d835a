package scoring

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"claimguard/internal/claims/models"
	"claimguard/internal/upstream"
	"claimguard/pkg/platform/circuit"
	dErrors "claimguard/pkg/domain-errors"
)

// GatewaySuite runs the gateway against a chi router standing in for the
// scoring service. Each test installs its own /predict handler.
type GatewaySuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	calls   atomic.Int32
	gateway *Gateway
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}

func (s *GatewaySuite) SetupTest() {
	s.calls.Store(0)
	s.handler = nil
	r := chi.NewRouter()
	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.handler(w, r)
	})
	s.server = httptest.NewServer(r)
	s.gateway = New(s.server.URL,
		WithClientOptions(upstream.WithTimeout(200*time.Millisecond)),
		WithBreaker(circuit.New(ServiceName, circuit.WithFailureThreshold(2))),
	)
}

func (s *GatewaySuite) TearDownTest() {
	s.server.Close()
}

func (s *GatewaySuite) respond(body string) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func (s *GatewaySuite) TestScoreLegitimate() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Equal("Blood test, clotting time", req["service_description"])
		s.InDelta(120.0, req["paid_amount"], 0.001)
		_, _ = w.Write([]byte(`{"HCPCS":{"service_code":"85610","paid_amount":120,"prediction":"Legitimate","predicted_probability":0.4}}`))
	}

	v, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 120)
	s.Require().NoError(err)
	s.Equal(&models.Verdict{ServiceCode: "85610", Label: models.StatusLegitimate, Probability: 0.4}, v)
}

func (s *GatewaySuite) TestScoreMapsScorerPredictions() {
	s.Run("Fraud", func() {
		s.respond(`{"GAT Prediction":{"prediction":"Non-Fraud"},"HCPCS":{"service_code":"Blood test, clotting time","prediction":"Fraud","predicted_probability":3.2}}`)
		v, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 900)
		s.Require().NoError(err)
		s.Equal(models.StatusFraudulent, v.Label)
		s.Equal("Blood test, clotting time", v.ServiceCode)
	})

	s.Run("Non-Fraud with numeric service code", func() {
		s.respond(`{"HCPCS":{"service_code":85610,"prediction":"Non-Fraud"}}`)
		v, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.Require().NoError(err)
		s.Equal(models.StatusLegitimate, v.Label)
		s.Equal("85610", v.ServiceCode)
	})
}

func (s *GatewaySuite) TestScoreRejected() {
	cases := map[string]string{
		"missing HCPCS":        `{"GAT Prediction":{"prediction":"Fraud"}}`,
		"error payload":        `{"error":"could not convert string to float"}`,
		"invalid service code": `{"HCPCS":{"service_code":"x","prediction":"Invalid Service Code"}}`,
		"empty prediction":     `{"HCPCS":{"service_code":"x"}}`,
		"not json":             `<html>oops</html>`,
		"wrong type for HCPCS": `{"HCPCS":"Fraud"}`,
	}
	for name, body := range cases {
		s.Run(name, func() {
			s.respond(body)
			v, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
			s.Nil(v)
			s.True(dErrors.HasCode(err, dErrors.CodeScoringRejected), "got %v", err)
		})
	}

	s.Run("client error status", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad input"}`))
		}
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeScoringRejected))
	})

	s.True(s.gateway.Healthy(), "answered requests keep the scorer healthy")
}

func (s *GatewaySuite) TestScoreUnavailable() {
	s.Run("timeout", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeScoringUnavailable), "got %v", err)
		s.Equal(upstream.CategoryTimeout, upstream.CategoryOf(err))
	})

	s.Run("service unavailable", func() {
		s.handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeScoringUnavailable))
	})

	s.False(s.gateway.Healthy(), "two consecutive outages open the breaker")
	s.Equal(2, s.gateway.Breaker().ConsecutiveFailures)

	s.Run("a good answer restores health", func() {
		s.respond(`{"HCPCS":{"service_code":"x","prediction":"Fraud"}}`)
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.NoError(err)
		s.True(s.gateway.Healthy())
	})
}

func (s *GatewaySuite) TestScoreServerErrors() {
	s.Run("crash page is unavailable", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<!doctype html><title>500 Internal Server Error</title>"))
		}
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeScoringUnavailable), "got %v", err)
		s.Equal(upstream.CategoryOutage, upstream.CategoryOf(err))
		s.Equal(1, s.gateway.Breaker().ConsecutiveFailures)
	})

	s.Run("structured error body is a rejection", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"model not loaded"}`))
		}
		_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
		s.True(dErrors.HasCode(err, dErrors.CodeScoringRejected), "got %v", err)
	})
}

func (s *GatewaySuite) TestScoreRefusesMalformedInput() {
	cases := []struct {
		name   string
		desc   models.ServiceDescription
		amount float64
	}{
		{"empty description", "", 10},
		{"blank description", "   ", 10},
		{"unknown description", "Massage", 10},
		{"negative amount", models.ServiceClottingTime, -1},
		{"NaN amount", models.ServiceClottingTime, math.NaN()},
		{"infinite amount", models.ServiceClottingTime, math.Inf(1)},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.gateway.Score(context.Background(), tc.desc, tc.amount)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		})
	}
	s.Equal(int32(0), s.calls.Load(), "malformed input is never forwarded")
}

func (s *GatewaySuite) TestNewBreakerRunsHooksOnChange() {
	var seen []circuit.Transition
	b := NewBreaker(nil, 1, func(_ string, t circuit.Transition) { seen = append(seen, t) })
	s.gateway = New(s.server.URL, WithBreaker(b))
	s.handler = func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }

	_, err := s.gateway.Score(context.Background(), models.ServiceClottingTime, 10)
	s.True(dErrors.HasCode(err, dErrors.CodeScoringUnavailable))

	s.Require().Len(seen, 1)
	s.Equal(circuit.StateOpen, seen[0].To)
}
