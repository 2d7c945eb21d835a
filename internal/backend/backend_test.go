package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	accountModels "claimguard/internal/accounts/models"
	claimModels "claimguard/internal/claims/models"
	"claimguard/internal/upstream"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// BackendSuite runs the client against a chi router standing in for the
// claims backend.
type BackendSuite struct {
	suite.Suite
	router *chi.Mux
	server *httptest.Server
	client *Client
	auth   []string
}

func TestBackendSuite(t *testing.T) {
	suite.Run(t, new(BackendSuite))
}

func (s *BackendSuite) SetupTest() {
	s.auth = nil
	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.auth = append(s.auth, r.Header.Get("Authorization"))
			next.ServeHTTP(w, r)
		})
	})
	s.server = httptest.NewServer(s.router)
	s.client = New(s.server.URL+"/", upstream.WithTokenSource(staticToken("tok")))
}

func (s *BackendSuite) TearDownTest() {
	s.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *BackendSuite) TestListClaims() {
	s.router.Get("/patient/claims", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"_id":"c1","userId":{"_id":"u1","username":"alice"},"hospitalName":"General","serviceDescription":"Blood test, clotting time","amount":120},
			{"_id":"c2","userId":{"_id":"u2","username":"bob"},"hospitalName":"North","serviceDescription":"X-ray of chest, 2 views, front and side","amount":"40","status":"Fraud"}
		]`))
	})

	claims, err := s.client.ListClaims(context.Background())
	s.Require().NoError(err)
	s.Require().Len(claims, 2)
	s.Equal(claimModels.ClaimID("c1"), claims[0].ID)
	s.Equal("alice", claims[0].Submitter.Username)
	s.Equal(claimModels.StatusPending, claims[0].EffectiveStatus())
	s.Equal(claimModels.StatusFraudulent, claims[1].Status)
	s.Equal([]string{"Bearer tok"}, s.auth)
}

func (s *BackendSuite) TestListClaimsByUser() {
	s.router.Get("/patient/claims/{userID}", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("u 1", chi.URLParam(r, "userID"))
		_, _ = w.Write([]byte(`[{"_id":"c1","userId":"u 1","amount":5}]`))
	})

	claims, err := s.client.ListClaimsByUser(context.Background(), "u 1")
	s.Require().NoError(err)
	s.Require().Len(claims, 1)
	s.Equal(claimModels.UserID("u 1"), claims[0].Submitter.ID)
}

func (s *BackendSuite) TestListClaimsNullBody() {
	s.router.Get("/patient/claims", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	claims, err := s.client.ListClaims(context.Background())
	s.Require().NoError(err)
	s.Empty(claims)
}

func (s *BackendSuite) TestSubmitClaim() {
	s.router.Post("/patient/claims", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("u1", body["userId"])
		s.Equal("General", body["hospitalName"])
		s.Equal("Blood test, clotting time", body["serviceDescription"])
		s.InDelta(120.0, body["amount"], 0.001)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Claim submitted successfully"})
	})

	msg, err := s.client.SubmitClaim(context.Background(), "u1", claimModels.SubmitRequest{
		HospitalName:       "General",
		ServiceDescription: "Blood test, clotting time",
		Amount:             120,
	})
	s.Require().NoError(err)
	s.Equal("Claim submitted successfully", msg)
}

func (s *BackendSuite) TestSetClaimStatus() {
	s.Run("sends the canonical label", func() {
		s.router.Put("/patient/claims/{claimID}", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
			s.Equal("c1", chi.URLParam(r, "claimID"))
			s.Equal(map[string]string{"status": "Legitimate"}, body)
			writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
		})

		s.NoError(s.client.SetClaimStatus(context.Background(), "c1", claimModels.StatusLegitimate))
	})

	s.Run("server rejection is categorized", func() {
		s.router.Put("/patient/claims/missing", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Claim not found"})
		})

		err := s.client.SetClaimStatus(context.Background(), "missing", claimModels.StatusFraudulent)
		s.Require().Error(err)
		s.Equal(upstream.CategoryNotFound, upstream.CategoryOf(err))
		s.Contains(err.Error(), "Claim not found")
	})
}

func (s *BackendSuite) TestListAccounts() {
	s.router.Get("/admin/organisers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"a1","username":"dr-who","email":"who@example.com","isVerified":true}]`))
	})

	accounts, err := s.client.ListAccounts(context.Background())
	s.Require().NoError(err)
	s.Equal([]accountModels.Account{{ID: "a1", Username: "dr-who", Email: "who@example.com", IsVerified: true}}, accounts)
}

func (s *BackendSuite) TestToggleAccount() {
	s.Run("acknowledged", func() {
		s.router.Patch("/admin/organisers/{accountID}/verify", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "accountID") == "locked" {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Admins only"})
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		s.NoError(s.client.ToggleAccount(context.Background(), "a1"))
	})

	s.Run("refused", func() {
		err := s.client.ToggleAccount(context.Background(), "locked")
		s.Require().Error(err)
		s.Equal(upstream.CategoryAuthentication, upstream.CategoryOf(err))
	})
}
