package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/services"
)

type BankFeedServiceTestSuite struct {
	suite.Suite
	repo    *MockBankTransactionRepository
	teamSvc *MockTeamService
	service portssvc.BankFeedSvcFacade
	ctx     context.Context
}

func (suite *BankFeedServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = new(MockBankTransactionRepository)
	suite.teamSvc = new(MockTeamService)
	suite.teamSvc.On("AuthorizeUserAction", mock.Anything, "treasurer", "team-1", domain.RoleManager).Return(nil).Maybe()
	suite.service = services.NewBankFeedService(suite.repo, services.WithTeamAuthorizer(suite.teamSvc), services.WithClock(clock))
}

func feedEntry(id, amount string) domain.BankFeedEntry {
	return domain.BankFeedEntry{
		ExternalID:   id,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "cad",
		PostedDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		MerchantName: "Arena Rentals",
		Raw:          json.RawMessage(`{"id": "` + id + `"}`),
	}
}

func (suite *BankFeedServiceTestSuite) TestIngest_CountsAndRowErrors() {
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "a"
	})).Return(domain.UpsertInserted, nil).Once()
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "b"
	})).Return(domain.UpsertUpdated, nil).Once()
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "c"
	})).Return(domain.UpsertUnchanged, nil).Once()
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "other-team"
	})).Return(domain.UpsertOutcome(""), apperrors.ErrConflict).Once()

	bad := feedEntry("fraction", "1.005")
	noID := feedEntry("", "10")

	result, err := suite.service.IngestBankTransactions(suite.ctx, "team-1", []domain.BankFeedEntry{
		feedEntry("a", "-250.00"),
		bad,
		feedEntry("b", "12.5"),
		noID,
		feedEntry("c", "1"),
		feedEntry("other-team", "5"),
	}, "treasurer")

	suite.Require().NoError(err)
	suite.Equal(1, result.Inserted)
	suite.Equal(1, result.Updated)
	suite.Equal(1, result.Unchanged)
	suite.Equal(3, result.Errored)
	suite.Require().Len(result.Errors, 3)
	suite.Equal("fraction", result.Errors[0].ExternalID)
	suite.Contains(result.Errors[1].Error, "externalID is required")
	suite.Contains(result.Errors[2].Error, "another team")
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BankFeedServiceTestSuite) TestIngest_NormalizesAmountAndDigest() {
	var stored []domain.PlaidBankTransaction
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.AnythingOfType("domain.PlaidBankTransaction")).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).(domain.PlaidBankTransaction)) }).
		Return(domain.UpsertInserted, nil).Twice()

	first := feedEntry("a", "-250.00")
	second := feedEntry("a", "-250.00")
	second.Raw = json.RawMessage(`{ "id":"a" }`)

	_, err := suite.service.IngestBankTransactions(suite.ctx, "team-1", []domain.BankFeedEntry{first, second}, "treasurer")

	suite.Require().NoError(err)
	suite.Require().Len(stored, 2)
	suite.Equal(int64(25000), stored[0].AmountCents)
	suite.Equal("CAD", stored[0].CurrencyCode)
	suite.Equal("team-1", stored[0].TeamID)
	suite.NotEmpty(stored[0].PayloadDigest)
	suite.Equal(stored[0].PayloadDigest, stored[1].PayloadDigest, "whitespace in the raw payload does not change the digest")
}

func (suite *BankFeedServiceTestSuite) TestIngest_ReconciledRowCannotMove() {
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "linked"
	})).Return(domain.UpsertOutcome(""), fmt.Errorf("reconciled bank transaction linked: %w", apperrors.ErrInvalidState)).Once()
	suite.repo.On("UpsertBankTransaction", mock.Anything, mock.MatchedBy(func(tx domain.PlaidBankTransaction) bool {
		return tx.ExternalTransactionID == "fresh"
	})).Return(domain.UpsertInserted, nil).Once()

	result, err := suite.service.IngestBankTransactions(suite.ctx, "team-1", []domain.BankFeedEntry{
		feedEntry("linked", "-260.00"),
		feedEntry("fresh", "-10.00"),
	}, "treasurer")

	suite.Require().NoError(err)
	suite.Equal(1, result.Inserted)
	suite.Equal(0, result.Updated)
	suite.Equal(1, result.Errored)
	suite.Require().Len(result.Errors, 1)
	suite.Equal("linked", result.Errors[0].ExternalID)
	suite.Contains(result.Errors[0].Error, "already reconciled")
	suite.NotContains(result.Errors[0].Error, "another team")
	suite.repo.AssertExpectations(suite.T())
}

func (suite *BankFeedServiceTestSuite) TestIngest_RequiresManager() {
	teamSvc := new(MockTeamService)
	teamSvc.On("AuthorizeUserAction", mock.Anything, "member", "team-1", domain.RoleManager).
		Return(apperrors.Forbidden("this action needs the manager role or higher on this team")).Once()
	svc := services.NewBankFeedService(suite.repo, services.WithTeamAuthorizer(teamSvc))

	_, err := svc.IngestBankTransactions(suite.ctx, "team-1", nil, "member")
	suite.True(errors.Is(err, apperrors.ErrForbidden))
}

func TestBankFeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankFeedServiceTestSuite))
}
