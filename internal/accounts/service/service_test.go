package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AccountsBackend

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"claimguard/internal/accounts/models"
	"claimguard/internal/accounts/service/mocks"
	"claimguard/internal/accounts/store"
	"claimguard/internal/platform/metrics"
	"claimguard/internal/upstream"
	dErrors "claimguard/pkg/domain-errors"
)

// =============================================================================
// Account Toggle Test Suite
// =============================================================================
// The toggle merges a single record after the server acknowledges. Tests
// verify the merge only ever happens after an Ack, the stale-view guard, and
// that duplicate clicks are ignored deterministically.

type AccountsServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	backend *mocks.MockAccountsBackend
	store   *store.Store
	metrics *metrics.Metrics
	service *Service
}

func TestAccountsServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountsServiceSuite))
}

func (s *AccountsServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.backend = mocks.NewMockAccountsBackend(s.ctrl)
	s.store = store.New()
	s.metrics = metrics.New(prometheus.NewRegistry())

	var err error
	s.service, err = New(s.backend, s.store, WithMetrics(s.metrics), WithTimeout(time.Second))
	s.Require().NoError(err)

	s.store.Replace([]models.Account{
		{ID: "a2", Username: "newer", IsVerified: true},
		{ID: "a1", Username: "older", IsVerified: false},
	})
}

func (s *AccountsServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AccountsServiceSuite) flag(id models.AccountID) bool {
	a, err := s.store.Get(id)
	s.Require().NoError(err)
	return a.IsVerified
}

func (s *AccountsServiceSuite) toggles(outcome string) float64 {
	return testutil.ToFloat64(s.metrics.AccountToggles.WithLabelValues(outcome))
}

func (s *AccountsServiceSuite) TestNew() {
	s.Run("nil backend returns error", func() {
		_, err := New(nil, s.store)
		s.ErrorContains(err, "accounts backend is required")
	})
	s.Run("nil store returns error", func() {
		_, err := New(s.backend, nil)
		s.ErrorContains(err, "account store is required")
	})
}

func (s *AccountsServiceSuite) TestLoadShowsNewestFirst() {
	ctx := context.Background()
	s.backend.EXPECT().ListAccounts(ctx).Return([]models.Account{
		{ID: "old"}, {ID: "mid"}, {ID: "new"},
	}, nil)

	s.Require().NoError(s.service.Load(ctx))

	list := s.service.List()
	s.Require().Len(list, 3)
	s.Equal([]models.AccountID{"new", "mid", "old"}, []models.AccountID{list[0].ID, list[1].ID, list[2].ID})
	s.Equal(3.0, testutil.ToFloat64(s.metrics.StoreRecords.WithLabelValues(metrics.StoreAccounts)))
}

func (s *AccountsServiceSuite) TestRefreshFailureKeepsList() {
	ctx := context.Background()
	s.backend.EXPECT().ListAccounts(ctx).Return(nil, upstream.NewError(upstream.CategoryOutage, "backend", "down", nil))

	err := s.service.Refresh(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeRefreshFailed))
	s.Equal("Failed to fetch Users", err.Error())
	s.Equal(2, s.store.Len())
}

// Scenario: admin toggles an unverified account, server Acks, store shows it verified.
func (s *AccountsServiceSuite) TestToggleAcknowledged() {
	s.backend.EXPECT().ToggleAccount(gomock.Any(), models.AccountID("a1")).Return(nil)

	res, err := s.service.Toggle(context.Background(), "a1", false)
	s.Require().NoError(err)

	s.Equal(&ToggleResult{AccountID: "a1", Verified: true, Message: "User verified successfully"}, res)
	s.True(s.flag("a1"))
	s.True(s.flag("a2"), "other accounts are untouched")
	s.False(s.service.Active("a1"))
	s.Equal(1.0, s.toggles(metrics.OutcomeDone))
}

func (s *AccountsServiceSuite) TestUnverifyAcknowledged() {
	s.backend.EXPECT().ToggleAccount(gomock.Any(), models.AccountID("a2")).Return(nil)

	res, err := s.service.Toggle(context.Background(), "a2", true)
	s.Require().NoError(err)
	s.Equal("User unverified successfully", res.Message)
	s.False(s.flag("a2"))
}

func (s *AccountsServiceSuite) TestToggleFailureLeavesFlag() {
	before := s.store.Snapshot()
	s.backend.EXPECT().
		ToggleAccount(gomock.Any(), models.AccountID("a2")).
		Return(upstream.NewError(upstream.CategoryAuthentication, "backend", "forbidden", nil))

	res, err := s.service.Toggle(context.Background(), "a2", true)

	s.Nil(res)
	s.True(dErrors.HasCode(err, dErrors.CodeToggleFailed))
	s.Equal("Failed to unverify User", err.Error())
	s.Equal(before, s.store.Snapshot())
	s.Equal(1.0, s.toggles(metrics.OutcomeFailed))
}

func (s *AccountsServiceSuite) TestToggleStaleViewIsRefused() {
	res, err := s.service.Toggle(context.Background(), "a2", false)

	s.Nil(res)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.True(s.flag("a2"))
}

func (s *AccountsServiceSuite) TestRepeatedToggleAfterAckIsRefused() {
	s.backend.EXPECT().ToggleAccount(gomock.Any(), models.AccountID("a1")).Times(1).Return(nil)

	_, err := s.service.Toggle(context.Background(), "a1", false)
	s.Require().NoError(err)

	res, err := s.service.Toggle(context.Background(), "a1", false)
	s.Nil(res)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.True(s.flag("a1"), "no second flip")
	s.Equal(1.0, s.toggles(metrics.OutcomeRejected))
}

func (s *AccountsServiceSuite) TestToggleChecksGuardBeforeFlag() {
	s.Require().True(s.service.active.TryAcquire("a2"))
	defer s.service.active.Release("a2")

	_, err := s.service.Toggle(context.Background(), "a2", false)
	s.True(dErrors.HasCode(err, dErrors.CodeCycleInFlight))
	s.Equal(0.0, s.toggles(metrics.OutcomeRejected))
}

func (s *AccountsServiceSuite) TestToggleUnknownAccount() {
	_, err := s.service.Toggle(context.Background(), "nobody", false)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// Scenario: a second click before the first Ack returns is ignored.
func (s *AccountsServiceSuite) TestSecondToggleBeforeAckIsIgnored() {
	entered := make(chan struct{})
	release := make(chan struct{})
	s.backend.EXPECT().ToggleAccount(gomock.Any(), models.AccountID("a1")).Times(1).
		DoAndReturn(func(context.Context, models.AccountID) error {
			close(entered)
			<-release
			return nil
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.service.Toggle(context.Background(), "a1", false)
		s.NoError(err)
	}()

	<-entered
	s.True(s.service.Active("a1"))
	_, err := s.service.Toggle(context.Background(), "a1", false)
	s.True(dErrors.HasCode(err, dErrors.CodeCycleInFlight))
	s.False(s.flag("a1"), "nothing merged before the Ack")

	close(release)
	wg.Wait()

	s.True(s.flag("a1"))
	s.Equal(1.0, s.toggles(metrics.OutcomeIgnored))
}

func (s *AccountsServiceSuite) TestAckAfterReloadRemovedAccount() {
	s.backend.EXPECT().ToggleAccount(gomock.Any(), models.AccountID("a1")).
		DoAndReturn(func(context.Context, models.AccountID) error {
			s.store.Replace([]models.Account{{ID: "a2", IsVerified: true}})
			return nil
		})

	res, err := s.service.Toggle(context.Background(), "a1", false)
	s.Require().NoError(err)
	s.True(res.Verified)
	s.Equal(1, s.store.Len())
}
