package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/services"
)

// fakeApprovalStore serializes every evaluation behind one lock, the way the
// database serializes them behind the spend intent row lock.
type fakeApprovalStore struct {
	mu          sync.Mutex
	intents     map[string]domain.SpendIntent
	approvals   map[string][]domain.SpendIntentApproval
	authorities map[string]domain.TeamSigningAuthority
	transitions int
}

func newFakeApprovalStore(intents ...domain.SpendIntent) *fakeApprovalStore {
	f := &fakeApprovalStore{
		intents:     map[string]domain.SpendIntent{},
		approvals:   map[string][]domain.SpendIntentApproval{},
		authorities: map[string]domain.TeamSigningAuthority{},
	}
	for _, in := range intents {
		f.intents[in.SpendIntentID] = in
	}
	return f
}

func (f *fakeApprovalStore) FindSpendIntentByID(_ context.Context, id string) (*domain.SpendIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.intents[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &in, nil
}

func (f *fakeApprovalStore) ListSpendIntentsByTeam(context.Context, string, portsrepo.SpendIntentFilter, int, *string) ([]domain.SpendIntent, *string, error) {
	return nil, nil, nil
}

func (f *fakeApprovalStore) ListMatchCandidates(context.Context, string, int64, time.Time, time.Time) ([]domain.SpendIntent, error) {
	return nil, nil
}

func (f *fakeApprovalStore) FindChequeMetadata(context.Context, string) (*domain.ChequeMetadata, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeApprovalStore) ListApprovalsBySpendIntent(_ context.Context, id string) ([]domain.SpendIntentApproval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.SpendIntentApproval(nil), f.approvals[id]...), nil
}

func (f *fakeApprovalStore) CreateApprovalAndEvaluate(_ context.Context, spendIntentID, approverUserID string, evaluate portsrepo.ApprovalEvaluator) (*domain.SpendIntent, []domain.SpendIntentApproval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	intent, ok := f.intents[spendIntentID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	state := portsrepo.ApprovalState{
		Intent:    intent,
		Approvals: append([]domain.SpendIntentApproval(nil), f.approvals[spendIntentID]...),
	}
	if a, ok := f.authorities[approverUserID]; ok {
		state.Authority = &a
	}

	plan, err := evaluate(state)
	if err != nil {
		return nil, nil, err
	}
	for _, a := range f.approvals[spendIntentID] {
		if a.ApproverUserID == approverUserID {
			return nil, nil, apperrors.ErrDuplicate
		}
	}
	f.approvals[spendIntentID] = append(f.approvals[spendIntentID], plan.Approval)
	if plan.AuthorizedAt != nil && intent.Status == domain.SpendIntentAuthorizationPending {
		intent.Status = domain.SpendIntentAuthorized
		intent.AuthorizedAt = plan.AuthorizedAt
		f.intents[spendIntentID] = intent
		f.transitions++
	}
	return &intent, append([]domain.SpendIntentApproval(nil), f.approvals[spendIntentID]...), nil
}

type ApprovalServiceTestSuite struct {
	suite.Suite
	store    *fakeApprovalStore
	teamSvc  *MockTeamService
	notifier *recordingNotifier
	service  portssvc.ApprovalSvcFacade
	ctx      context.Context
}

const (
	approvalTeam   = "team-1"
	approvalIntent = "intent-1"
)

func pendingIntent() domain.SpendIntent {
	return domain.SpendIntent{
		SpendIntentID:          approvalIntent,
		TeamID:                 approvalTeam,
		AmountCents:            25000,
		CurrencyCode:           "CAD",
		PaymentMethod:          domain.PaymentMethodETransfer,
		VendorName:             "Arena Rentals",
		PayeeUserID:            strPtr("payee"),
		AuthorizationType:      domain.ManualSignerApproval,
		RequiresManualApproval: true,
		Status:                 domain.SpendIntentAuthorizationPending,
	}
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newFakeApprovalStore(pendingIntent())
	suite.store.authorities["signer"] = domain.TeamSigningAuthority{TeamID: approvalTeam, UserID: "signer", IsActive: true}
	suite.store.authorities["rep"] = domain.TeamSigningAuthority{TeamID: approvalTeam, UserID: "rep", IsActive: true, IsIndependentParentRep: true}
	suite.store.authorities["payee"] = domain.TeamSigningAuthority{TeamID: approvalTeam, UserID: "payee", IsActive: true}

	suite.teamSvc = new(MockTeamService)
	suite.teamSvc.On("RequireSigningAuthority", mock.Anything, mock.Anything, approvalTeam).Return(&domain.TeamSigningAuthority{IsActive: true}, nil).Maybe()
	suite.teamSvc.On("AuthorizeUserAction", mock.Anything, mock.Anything, approvalTeam, mock.Anything).Return(nil).Maybe()
	suite.teamSvc.On("EffectivePolicy", mock.Anything, approvalTeam).Return(domain.DefaultPolicy(), nil).Maybe()

	suite.notifier = &recordingNotifier{}
	suite.service = services.NewApprovalService(suite.store, suite.store, suite.teamSvc,
		services.WithTeamAuthorizer(suite.teamSvc),
		services.WithNotifier(suite.notifier),
		services.WithClock(clock))
}

func (suite *ApprovalServiceTestSuite) TestQuorumReachedOnSecondApproval() {
	first, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().NoError(err)
	suite.False(first.Transitioned)
	suite.Equal(1, first.Summary.Quorum.ApprovalsCount)
	suite.Equal(0, first.Summary.Quorum.IndependentRepApprovalsCount)
	suite.False(first.Summary.Quorum.IsAuthorized)
	suite.Equal(domain.SpendIntentAuthorizationPending, first.Summary.Status)

	second, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "rep", strPtr("ok"))
	suite.Require().NoError(err)
	suite.True(second.Transitioned)
	suite.True(second.Approval.IsIndependentParentRep)
	suite.Equal(2, second.Summary.Quorum.ApprovalsCount)
	suite.Equal(1, second.Summary.Quorum.IndependentRepApprovalsCount)
	suite.True(second.Summary.Quorum.IsAuthorized)
	suite.Equal(domain.SpendIntentAuthorized, second.Summary.Status)
	suite.Require().NotNil(second.Summary.AuthorizedAt)
	suite.Equal(fixedNow, *second.Summary.AuthorizedAt)

	suite.Equal([]domain.NotificationEvent{
		domain.EventApprovalRecorded,
		domain.EventApprovalRecorded,
		domain.EventSpendIntentAuthorized,
	}, suite.notifier.Events())
}

func (suite *ApprovalServiceTestSuite) TestTwoNonRepApprovalsDoNotAuthorize() {
	suite.store.authorities["signer2"] = domain.TeamSigningAuthority{UserID: "signer2", IsActive: true}

	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().NoError(err)
	out, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer2", nil)
	suite.Require().NoError(err)

	suite.False(out.Summary.Quorum.IsAuthorized)
	suite.Equal(0, out.Summary.Quorum.ApprovalsRemaining)
	suite.Equal(1, out.Summary.Quorum.IndependentRepsRemaining)
	suite.Equal(domain.SpendIntentAuthorizationPending, out.Summary.Status)
}

func (suite *ApprovalServiceTestSuite) TestDuplicateApprovalRejected() {
	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().NoError(err)

	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.Equal("you have already approved this payment", apperrors.UserMessage(err, ""))
}

func (suite *ApprovalServiceTestSuite) TestDuplicateAfterQuorumStillReportedAsDuplicate() {
	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().NoError(err)
	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "rep", nil)
	suite.Require().NoError(err)

	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "rep", nil)
	suite.Equal("you have already approved this payment", apperrors.UserMessage(err, ""))
}

func (suite *ApprovalServiceTestSuite) TestApprovalAfterAuthorizationRejected() {
	suite.store.authorities["third"] = domain.TeamSigningAuthority{UserID: "third", IsActive: true}
	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.Require().NoError(err)
	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "rep", nil)
	suite.Require().NoError(err)

	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "third", nil)
	suite.True(errors.Is(err, apperrors.ErrInvalidState))
	suite.Equal("this payment is already authorized", apperrors.UserMessage(err, ""))
	suite.Equal(1, suite.store.transitions)
}

func (suite *ApprovalServiceTestSuite) TestSelfApprovalForbidden() {
	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "payee", nil)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
	suite.Equal("you cannot approve a payment to yourself", apperrors.UserMessage(err, ""))
}

func (suite *ApprovalServiceTestSuite) TestNoPayeeBlocksNobody() {
	in := pendingIntent()
	in.PayeeUserID = nil
	suite.store.intents[approvalIntent] = in

	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "payee", nil)
	suite.NoError(err)
}

func (suite *ApprovalServiceTestSuite) TestStandingIntentRejected() {
	in := pendingIntent()
	in.RequiresManualApproval = false
	in.Status = domain.SpendIntentAuthorized
	suite.store.intents[approvalIntent] = in

	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "signer", nil)
	suite.True(errors.Is(err, apperrors.ErrInvalidState))
	suite.Equal("this payment does not require manual approval", apperrors.UserMessage(err, ""))
}

func (suite *ApprovalServiceTestSuite) TestMissingIntentAndOtherTeam() {
	_, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, "missing", "signer", nil)
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	other := pendingIntent()
	other.SpendIntentID = "intent-other"
	other.TeamID = "team-2"
	suite.store.intents[other.SpendIntentID] = other
	_, err = suite.service.SubmitApproval(suite.ctx, approvalTeam, other.SpendIntentID, "signer", nil)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *ApprovalServiceTestSuite) TestCallerWithoutSigningAuthority() {
	teamSvc := new(MockTeamService)
	teamSvc.On("RequireSigningAuthority", mock.Anything, "nobody", approvalTeam).
		Return(nil, apperrors.Forbidden("you do not hold signing authority for this team")).Once()
	svc := services.NewApprovalService(suite.store, suite.store, teamSvc, services.WithTeamAuthorizer(teamSvc))

	_, err := svc.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "nobody", nil)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
	suite.Empty(suite.store.approvals[approvalIntent])
	teamSvc.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSnapshotSurvivesAuthorityChange() {
	out, err := suite.service.SubmitApproval(suite.ctx, approvalTeam, approvalIntent, "rep", nil)
	suite.Require().NoError(err)
	suite.True(out.Approval.IsIndependentParentRep)

	a := suite.store.authorities["rep"]
	a.IsIndependentParentRep = false
	suite.store.authorities["rep"] = a

	summary, err := suite.service.GetApprovalSummary(suite.ctx, approvalTeam, approvalIntent, "viewer")
	suite.Require().NoError(err)
	suite.Require().Len(summary.Approvals, 1)
	suite.True(summary.Approvals[0].IsIndependentParentRep)
	suite.Equal(1, summary.Quorum.IndependentRepApprovalsCount)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

func TestSubmitApproval_ConcurrentSignersTransitionOnce(t *testing.T) {
	store := newFakeApprovalStore(pendingIntent())
	const signers = 8
	for i := 0; i < signers; i++ {
		id := fmt.Sprintf("signer-%d", i)
		store.authorities[id] = domain.TeamSigningAuthority{UserID: id, IsActive: true, IsIndependentParentRep: i%2 == 0}
	}

	teamSvc := new(MockTeamService)
	teamSvc.On("RequireSigningAuthority", mock.Anything, mock.Anything, approvalTeam).Return(&domain.TeamSigningAuthority{IsActive: true}, nil)
	teamSvc.On("EffectivePolicy", mock.Anything, approvalTeam).Return(domain.DefaultPolicy(), nil)
	svc := services.NewApprovalService(store, store, teamSvc, services.WithTeamAuthorizer(teamSvc))

	var wg sync.WaitGroup
	var mu sync.Mutex
	transitioned := 0
	for i := 0; i < signers; i++ {
		for attempt := 0; attempt < 2; attempt++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				out, err := svc.SubmitApproval(context.Background(), approvalTeam, approvalIntent, id, nil)
				if err == nil && out.Transitioned {
					mu.Lock()
					transitioned++
					mu.Unlock()
				}
			}(fmt.Sprintf("signer-%d", i))
		}
	}
	wg.Wait()

	assert.Equal(t, 1, transitioned)
	assert.Equal(t, 1, store.transitions)

	seen := map[string]bool{}
	for _, a := range store.approvals[approvalIntent] {
		require.False(t, seen[a.ApproverUserID], "duplicate approval for %s", a.ApproverUserID)
		seen[a.ApproverUserID] = true
	}
	intent, _ := store.FindSpendIntentByID(context.Background(), approvalIntent)
	assert.Equal(t, domain.SpendIntentAuthorized, intent.Status)
}
