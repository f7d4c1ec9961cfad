package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/authorization"
	"github.com/SscSPs/team_cfo_backend/internal/core/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

type SpendIntentServiceTestSuite struct {
	suite.Suite
	teamRepo   *MockTeamRepository
	intentRepo *MockSpendIntentRepository
	teamSvc    *MockTeamService
	notifier   *recordingNotifier
	service    portssvc.SpendIntentSvcFacade
	ctx        context.Context
}

const (
	siTeam = "team-1"
	siUser = "member-1"
)

func (suite *SpendIntentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.teamRepo = new(MockTeamRepository)
	suite.intentRepo = new(MockSpendIntentRepository)
	suite.teamSvc = new(MockTeamService)
	suite.notifier = &recordingNotifier{}

	suite.teamSvc.On("AuthorizeUserAction", mock.Anything, siUser, siTeam, mock.Anything).Return(nil).Maybe()
	suite.teamSvc.On("EffectivePolicy", mock.Anything, siTeam).Return(domain.DefaultPolicy(), nil).Maybe()

	suite.service = services.NewSpendIntentService(suite.intentRepo, suite.teamRepo, suite.teamSvc,
		services.WithTeamAuthorizer(suite.teamSvc),
		services.WithNotifier(suite.notifier),
		services.WithClock(clock))
}

func (suite *SpendIntentServiceTestSuite) standingRequest() dto.CreateSpendIntentRequest {
	amount := decimal.NewFromInt(25000)
	return dto.CreateSpendIntentRequest{
		AmountCents:      &amount,
		CurrencyCode:     "cad",
		PaymentMethod:    "E_TRANSFER",
		VendorID:         strPtr("vendor-1"),
		PayeeUserID:      strPtr("coach"),
		BudgetLineItemID: strPtr("line-1"),
		Description:      "Ice time",
	}
}

func (suite *SpendIntentServiceTestSuite) expectLookups(budget domain.BudgetStatus, whitelisted bool, payeeRole domain.TeamRole) {
	suite.teamRepo.On("FindBudgetLineItem", mock.Anything, siTeam, "line-1").
		Return(&domain.BudgetLineItem{LineItemID: "line-1", BudgetStatus: budget}, nil).Once()
	suite.teamRepo.On("FindVendorByID", mock.Anything, siTeam, "vendor-1").
		Return(&domain.Vendor{VendorID: "vendor-1", Name: "Arena Rentals", IsWhitelisted: whitelisted}, nil).Once()
	suite.teamRepo.On("FindTeamMember", mock.Anything, siTeam, "coach").
		Return(&domain.TeamMember{UserID: "coach", Role: payeeRole}, nil).Once()
}

func (suite *SpendIntentServiceTestSuite) TestCreate_StandingAuthorization() {
	suite.expectLookups(domain.BudgetApproved, true, domain.RoleMember)
	suite.intentRepo.On("SaveSpendIntent", mock.Anything, mock.MatchedBy(func(in domain.SpendIntent) bool {
		return in.Status == domain.SpendIntentAuthorized && in.AuthorizedAt != nil && in.CurrencyCode == "CAD"
	}), (*domain.ChequeMetadata)(nil)).Return(nil).Once()

	out, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, suite.standingRequest(), siUser)

	suite.Require().NoError(err)
	suite.Equal(domain.StandingBudgetAuthorization, out.Decision.AuthorizationType)
	suite.False(out.Decision.RequiresManualApproval)
	suite.Equal(domain.SpendIntentAuthorized, out.Intent.Status)
	suite.Equal(fixedNow, *out.Intent.AuthorizedAt)
	suite.Equal("Arena Rentals", out.Intent.VendorName)
	suite.True(out.DualApprovalAdvisory, "25000 cents is above the dual approval threshold")
	suite.Equal([]domain.NotificationEvent{domain.EventSpendIntentAuthorized}, suite.notifier.Events())
	suite.intentRepo.AssertExpectations(suite.T())
	suite.teamRepo.AssertExpectations(suite.T())
}

func (suite *SpendIntentServiceTestSuite) TestCreate_NoBudgetLineNeedsManualApproval() {
	req := suite.standingRequest()
	req.BudgetLineItemID = nil
	suite.teamRepo.On("FindVendorByID", mock.Anything, siTeam, "vendor-1").
		Return(&domain.Vendor{VendorID: "vendor-1", IsWhitelisted: true}, nil).Once()
	suite.teamRepo.On("FindTeamMember", mock.Anything, siTeam, "coach").
		Return(&domain.TeamMember{UserID: "coach", Role: domain.RoleMember}, nil).Once()
	suite.intentRepo.On("SaveSpendIntent", mock.Anything, mock.AnythingOfType("domain.SpendIntent"), (*domain.ChequeMetadata)(nil)).Return(nil).Once()

	out, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, req, siUser)

	suite.Require().NoError(err)
	suite.Equal(domain.ManualSignerApproval, out.Decision.AuthorizationType)
	suite.Equal(2, out.Decision.RequiredApprovalsCount)
	suite.Equal(1, out.Decision.MinIndependentRepCount)
	suite.Contains(out.Decision.Reason, authorization.ReasonNoBudgetLine)
	suite.Equal(domain.SpendIntentAuthorizationPending, out.Intent.Status)
	suite.Nil(out.Intent.AuthorizedAt)
	suite.Empty(suite.notifier.Events())
}

func (suite *SpendIntentServiceTestSuite) TestCreate_EveryFailedConditionIsExplained() {
	suite.expectLookups(domain.BudgetDraft, false, domain.RoleTreasurer)
	suite.intentRepo.On("SaveSpendIntent", mock.Anything, mock.AnythingOfType("domain.SpendIntent"), (*domain.ChequeMetadata)(nil)).Return(nil).Once()

	out, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, suite.standingRequest(), siUser)

	suite.Require().NoError(err)
	suite.Equal([]string{
		authorization.ReasonBudgetNotApproved,
		authorization.ReasonVendorNotKnown,
		authorization.ReasonTreasurerIsPayee,
	}, out.Decision.Failures)
}

func (suite *SpendIntentServiceTestSuite) TestCreate_UnknownVendorIsNotKnown() {
	suite.teamRepo.On("FindBudgetLineItem", mock.Anything, siTeam, "line-1").
		Return(&domain.BudgetLineItem{BudgetStatus: domain.BudgetApproved}, nil).Once()
	suite.teamRepo.On("FindVendorByID", mock.Anything, siTeam, "vendor-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.teamRepo.On("FindTeamMember", mock.Anything, siTeam, "coach").Return(nil, apperrors.ErrNotFound).Once()
	suite.intentRepo.On("SaveSpendIntent", mock.Anything, mock.AnythingOfType("domain.SpendIntent"), (*domain.ChequeMetadata)(nil)).Return(nil).Once()

	req := suite.standingRequest()
	req.VendorName = "Somebody"
	out, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, req, siUser)

	suite.Require().NoError(err)
	suite.Equal([]string{authorization.ReasonVendorNotKnown}, out.Decision.Failures)
}

func (suite *SpendIntentServiceTestSuite) TestCreate_ReportsAllInputErrorsAtOnce() {
	amount := decimal.RequireFromString("-12.5")
	req := dto.CreateSpendIntentRequest{
		AmountCents:   &amount,
		PaymentMethod: "BITCOIN",
		Cheque:        &dto.ChequeMetadataRequest{},
	}

	_, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, req, siUser)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	var fields apperrors.ValidationErrors
	suite.Require().True(errors.As(err, &fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	suite.ElementsMatch([]string{"amountCents", "paymentMethod", "vendor", "cheque"}, names)
	suite.intentRepo.AssertNotCalled(suite.T(), "SaveSpendIntent", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SpendIntentServiceTestSuite) TestCreate_ChequeStoredWithIntent() {
	req := suite.standingRequest()
	req.PaymentMethod = "CHEQUE"
	req.Cheque = &dto.ChequeMetadataRequest{ChequeNumber: "1042", SecondSignerName: strPtr("Pat")}
	suite.expectLookups(domain.BudgetApproved, true, domain.RoleMember)
	suite.intentRepo.On("SaveSpendIntent", mock.Anything, mock.AnythingOfType("domain.SpendIntent"),
		mock.MatchedBy(func(c *domain.ChequeMetadata) bool {
			return c != nil && c.ChequeNumber == "1042" && c.HasSecondSigner() && c.RecordedBy == siUser
		})).Return(nil).Once()

	out, err := suite.service.CreateSpendIntent(suite.ctx, siTeam, req, siUser)

	suite.Require().NoError(err)
	suite.Require().NotNil(out.Cheque)
	suite.Equal(out.Intent.SpendIntentID, out.Cheque.SpendIntentID)
}

func (suite *SpendIntentServiceTestSuite) TestCreate_NonMemberForbidden() {
	teamSvc := new(MockTeamService)
	teamSvc.On("AuthorizeUserAction", mock.Anything, "stranger", siTeam, domain.RoleMember).
		Return(apperrors.Forbidden("you are not a member of this team")).Once()
	svc := services.NewSpendIntentService(suite.intentRepo, suite.teamRepo, teamSvc, services.WithTeamAuthorizer(teamSvc))

	_, err := svc.CreateSpendIntent(suite.ctx, siTeam, suite.standingRequest(), "stranger")

	suite.True(errors.Is(err, apperrors.ErrForbidden))
	teamSvc.AssertExpectations(suite.T())
}

func (suite *SpendIntentServiceTestSuite) TestGet_OtherTeamIsNotFound() {
	suite.intentRepo.On("FindSpendIntentByID", mock.Anything, "intent-9").
		Return(&domain.SpendIntent{SpendIntentID: "intent-9", TeamID: "team-2"}, nil).Once()

	_, err := suite.service.GetSpendIntent(suite.ctx, siTeam, "intent-9", siUser)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *SpendIntentServiceTestSuite) TestRecordCheque_RequiresChequeIntent() {
	suite.intentRepo.On("FindSpendIntentByID", mock.Anything, "intent-1").
		Return(&domain.SpendIntent{SpendIntentID: "intent-1", TeamID: siTeam, PaymentMethod: domain.PaymentMethodCash}, nil).Once()

	_, err := suite.service.RecordChequeMetadata(suite.ctx, siTeam, "intent-1", dto.ChequeMetadataRequest{}, siUser)

	suite.True(errors.Is(err, apperrors.ErrInvalidState))
}

func (suite *SpendIntentServiceTestSuite) TestRecordCheque_Upserts() {
	suite.intentRepo.On("FindSpendIntentByID", mock.Anything, "intent-1").
		Return(&domain.SpendIntent{SpendIntentID: "intent-1", TeamID: siTeam, PaymentMethod: domain.PaymentMethodCheque}, nil).Once()
	suite.intentRepo.On("UpsertChequeMetadata", mock.Anything, mock.MatchedBy(func(c domain.ChequeMetadata) bool {
		return c.SpendIntentID == "intent-1" && c.HasImage() && c.RecordedAt.Equal(fixedNow)
	})).Return(nil).Once()

	out, err := suite.service.RecordChequeMetadata(suite.ctx, siTeam, "intent-1",
		dto.ChequeMetadataRequest{ChequeImageFileID: strPtr("file-1")}, siUser)

	suite.Require().NoError(err)
	suite.True(out.HasImage())
	suite.intentRepo.AssertExpectations(suite.T())
}

func (suite *SpendIntentServiceTestSuite) TestList_PassesFilterAndToken() {
	status := "AUTHORIZED"
	token := "abc"
	next := "def"
	params := dto.ListSpendIntentsParams{ListParams: dto.ListParams{Limit: 10, NextToken: &token}, Status: &status}
	suite.intentRepo.On("ListSpendIntentsByTeam", mock.Anything, siTeam,
		mock.MatchedBy(func(f portsrepo.SpendIntentFilter) bool {
			return f.Status != nil && *f.Status == domain.SpendIntentAuthorized
		}), 10, &token).
		Return([]domain.SpendIntent{{SpendIntentID: "a"}}, &next, nil).Once()

	items, gotNext, err := suite.service.ListSpendIntents(suite.ctx, siTeam, siUser, params)

	suite.Require().NoError(err)
	suite.Len(items, 1)
	suite.Equal(&next, gotNext)
}

func TestSpendIntentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SpendIntentServiceTestSuite))
}
