package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo  *MockTransactionRepository
	teamRepo *MockTeamRepository
	teamSvc  *MockTeamService
	notifier *recordingNotifier
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.txnRepo = new(MockTransactionRepository)
	suite.teamRepo = new(MockTeamRepository)
	suite.teamSvc = new(MockTeamService)
	suite.notifier = &recordingNotifier{}
	suite.teamSvc.On("AuthorizeUserAction", mock.Anything, mock.Anything, "team-1", mock.Anything).Return(nil).Maybe()
	suite.teamSvc.On("EffectivePolicy", mock.Anything, "team-1").Return(domain.DefaultPolicy(), nil).Maybe()

	suite.service = services.NewTransactionService(suite.txnRepo, suite.teamRepo, suite.teamSvc,
		services.WithTeamAuthorizer(suite.teamSvc),
		services.WithNotifier(suite.notifier),
		services.WithClock(clock))
}

func budgetWithEquipment() *domain.BudgetSnapshot {
	return &domain.BudgetSnapshot{
		BudgetID: "budget-1",
		Status:   domain.BudgetApproved,
		Allocations: map[string]domain.BudgetAllocation{
			"equipment": {CategoryID: "equipment", Allocated: decimal.NewFromInt(1000), CurrentSpent: decimal.NewFromInt(200)},
		},
	}
}

func (suite *TransactionServiceTestSuite) TestCreate_MissingReceiptIsException() {
	suite.teamRepo.On("FindCurrentBudgetSnapshot", mock.Anything, "team-1").Return(budgetWithEquipment(), nil).Once()
	suite.txnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, "team-1", dto.CreateTransactionRequest{
		Type:            domain.TransactionExpense,
		Amount:          decimal.NewFromInt(150),
		Vendor:          "Sport Chek",
		CategoryID:      strPtr("equipment"),
		TransactionDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
	}, "member-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionException, txn.Status)
	suite.Require().NotNil(txn.Validation)
	suite.False(txn.Validation.Compliant)
	suite.Equal(85, txn.Validation.Score)
	suite.Require().Len(txn.Validation.Violations, 1)
	suite.Equal(domain.CodeRequiredReceipt, txn.Validation.Violations[0].Code)
	suite.Require().NotNil(txn.ExceptionSeverity)
	suite.Equal(domain.ExceptionSeverityMedium, *txn.ExceptionSeverity)
	suite.Empty(suite.notifier.Events(), "medium severity does not page anyone")
}

func (suite *TransactionServiceTestSuite) TestCreate_CompliantIsValidated() {
	suite.teamRepo.On("FindBudgetSnapshot", mock.Anything, "team-1", "budget-1").Return(budgetWithEquipment(), nil).Once()
	suite.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.TransactionValidated && t.ExceptionSeverity == nil
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, "team-1", dto.CreateTransactionRequest{
		Type:            domain.TransactionExpense,
		Amount:          decimal.NewFromInt(50),
		Vendor:          "Sport Chek",
		CategoryID:      strPtr("equipment"),
		BudgetID:        strPtr("budget-1"),
		TransactionDate: fixedNow,
	}, "member-1")

	suite.Require().NoError(err)
	suite.Equal(100, txn.Validation.Score)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreate_CashOverLimitNotifies() {
	suite.teamRepo.On("FindCurrentBudgetSnapshot", mock.Anything, "team-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.txnRepo.On("SaveTransaction", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, "team-1", dto.CreateTransactionRequest{
		Type:            domain.TransactionExpense,
		Amount:          decimal.NewFromInt(6000),
		Vendor:          "ATM withdrawal",
		CategoryID:      strPtr("misc"),
		ReceiptURL:      strPtr("https://files.example/r.pdf"),
		TransactionDate: fixedNow,
	}, "member-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ExceptionSeverityCritical, *txn.ExceptionSeverity)
	suite.Equal([]domain.NotificationEvent{domain.EventTransactionNeedsReview}, suite.notifier.Events())
}

func (suite *TransactionServiceTestSuite) TestCreate_RejectsNonPositiveAmount() {
	_, err := suite.service.CreateTransaction(suite.ctx, "team-1", dto.CreateTransactionRequest{
		Type:   domain.TransactionExpense,
		Amount: decimal.Zero,
	}, "member-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *TransactionServiceTestSuite) TestRevalidate_ResolvedIsNeverOverwritten() {
	resolved := &domain.Transaction{TransactionID: "t-1", TeamID: "team-1", Status: domain.TransactionResolved}
	suite.txnRepo.On("FindTransactionByID", mock.Anything, "t-1").Return(resolved, nil).Once()

	txn, err := suite.service.RevalidateTransaction(suite.ctx, "team-1", "t-1", "member-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionResolved, txn.Status)
	suite.txnRepo.AssertNotCalled(suite.T(), "UpdateTransactionState", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestRevalidate_ClearsFixedException() {
	existing := &domain.Transaction{
		TransactionID: "t-1",
		TeamID:        "team-1",
		Type:          domain.TransactionExpense,
		Status:        domain.TransactionException,
		Amount:        decimal.NewFromInt(150),
		CategoryID:    strPtr("equipment"),
		ReceiptURL:    strPtr("https://files.example/r.pdf"),
	}
	suite.txnRepo.On("FindTransactionByID", mock.Anything, "t-1").Return(existing, nil).Once()
	suite.teamRepo.On("FindCurrentBudgetSnapshot", mock.Anything, "team-1").Return(budgetWithEquipment(), nil).Once()
	suite.txnRepo.On("UpdateTransactionState", mock.Anything, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.TransactionValidated && t.LastUpdatedBy == "member-1"
	})).Return(nil).Once()

	txn, err := suite.service.RevalidateTransaction(suite.ctx, "team-1", "t-1", "member-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionValidated, txn.Status)
	suite.Nil(txn.ExceptionSeverity)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestResolve_KeepsViolationHistory() {
	history := &domain.ValidationResult{Violations: []domain.Violation{{Code: domain.CodeRequiredReceipt}}, Score: 85}
	suite.txnRepo.On("FindTransactionByID", mock.Anything, "t-1").
		Return(&domain.Transaction{TransactionID: "t-1", TeamID: "team-1", Status: domain.TransactionException, Validation: history}, nil).Once()
	suite.txnRepo.On("UpdateTransactionState", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.ResolveTransaction(suite.ctx, "team-1", "t-1", dto.ResolveTransactionRequest{Note: " receipt lost, board ok'd "}, "treasurer")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionResolved, txn.Status)
	suite.Require().NotNil(txn.Resolution)
	suite.Equal("receipt lost, board ok'd", txn.Resolution.Note)
	suite.Equal("treasurer", txn.Resolution.ResolvedBy)
	suite.Equal(fixedNow, txn.Resolution.ResolvedAt)
	suite.Len(txn.Validation.Violations, 1)
}

func (suite *TransactionServiceTestSuite) TestResolve_OnlyExceptions() {
	suite.txnRepo.On("FindTransactionByID", mock.Anything, "t-1").
		Return(&domain.Transaction{TransactionID: "t-1", TeamID: "team-1", Status: domain.TransactionValidated}, nil).Once()

	_, err := suite.service.ResolveTransaction(suite.ctx, "team-1", "t-1", dto.ResolveTransactionRequest{Note: "x"}, "treasurer")
	suite.True(errors.Is(err, apperrors.ErrInvalidState))
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
