package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/validation"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// transactionService validates ledger transactions against team policy.
type transactionService struct {
	BaseService
	txnRepo   portsrepo.TransactionRepositoryFacade
	budgets   portsrepo.BudgetReader
	policySvc portssvc.TeamPolicySvc
	engine    *validation.Engine
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	budgets portsrepo.BudgetReader,
	policySvc portssvc.TeamPolicySvc,
	opts ...Option,
) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:   txnRepo,
		budgets:   budgets,
		policySvc: policySvc,
	}
	s.apply(opts)
	s.engine = validation.NewEngine(validation.WithClock(s.Now))
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a manual ledger entry and validates it.
func (s *transactionService) CreateTransaction(ctx context.Context, teamID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ValidationErrors{{Field: "amount", Message: "must be greater than zero"}}
	}

	now := s.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TeamID:          teamID,
		Type:            req.Type,
		Status:          domain.TransactionImported,
		Amount:          req.Amount,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		Vendor:          strings.TrimSpace(req.Vendor),
		Description:     strings.TrimSpace(req.Description),
		CategoryID:      req.CategoryID,
		BudgetID:        req.BudgetID,
		ReceiptURL:      req.ReceiptURL,
		TransactionDate: req.TransactionDate,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	if err := s.validate(ctx, &txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("team_id", teamID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
		slog.Int("score", txn.Validation.Score))
	s.notifyIfNeedsReview(ctx, txn, userID)
	return &txn, nil
}

// RevalidateTransaction runs the rules again against the current budget and
// policy. Resolved transactions are returned untouched.
func (s *transactionService) RevalidateTransaction(ctx context.Context, teamID, transactionID, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}
	txn, err := s.loadTeamTransaction(ctx, teamID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.TransactionResolved {
		s.LogDebug(ctx, "Skipping revalidation of resolved transaction", slog.String("transaction_id", transactionID))
		return txn, nil
	}

	if err := s.validate(ctx, txn); err != nil {
		return nil, err
	}
	txn.LastUpdatedAt = s.Now()
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransactionState(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.notifyIfNeedsReview(ctx, *txn, userID)
	return txn, nil
}

// ResolveTransaction closes an exception with a note. The violation history stays.
func (s *transactionService) ResolveTransaction(ctx context.Context, teamID, transactionID string, req dto.ResolveTransactionRequest, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleManager); err != nil {
		return nil, err
	}
	txn, err := s.loadTeamTransaction(ctx, teamID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TransactionException {
		return nil, apperrors.InvalidState("only transactions with open exceptions can be resolved")
	}

	now := s.Now()
	txn.Status = domain.TransactionResolved
	txn.Resolution = &domain.Resolution{
		ResolvedAt: now,
		ResolvedBy: userID,
		Note:       strings.TrimSpace(req.Note),
	}
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransactionState(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to resolve transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Transaction resolved", slog.String("transaction_id", transactionID))
	return txn, nil
}

// GetTransaction returns one ledger transaction of the team.
func (s *transactionService) GetTransaction(ctx context.Context, teamID, transactionID, userID string) (*domain.Transaction, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.loadTeamTransaction(ctx, teamID, transactionID)
}

// ListTransactions pages through the team's ledger.
func (s *transactionService) ListTransactions(ctx context.Context, teamID, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	var filter portsrepo.TransactionFilter
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		filter.Status = &status
	}
	txns, next, err := s.txnRepo.ListTransactionsByTeam(ctx, teamID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("team_id", teamID))
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

// validate runs the engine and writes status, snapshot and severity onto txn.
func (s *transactionService) validate(ctx context.Context, txn *domain.Transaction) error {
	policy, err := s.policySvc.EffectivePolicy(ctx, txn.TeamID)
	if err != nil {
		return err
	}
	budget, err := s.budgetFor(ctx, txn)
	if err != nil {
		return err
	}

	result := s.engine.Validate(validation.NewContext(*txn, budget, policy))
	txn.Validation = &result
	txn.Status = validation.DeriveStatus(result)
	txn.ExceptionSeverity = nil
	if txn.Status == domain.TransactionException {
		severity := validation.ClassifyExceptionSeverity(result.Violations, txn.Amount, policy)
		txn.ExceptionSeverity = &severity
	}
	return nil
}

func (s *transactionService) budgetFor(ctx context.Context, txn *domain.Transaction) (*domain.BudgetSnapshot, error) {
	if txn.BudgetID != nil && *txn.BudgetID != "" {
		budget, err := s.budgets.FindBudgetSnapshot(ctx, txn.TeamID, *txn.BudgetID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ValidationErrors{{Field: "budgetID", Message: "does not exist for this team"}}
		}
		if err != nil {
			return nil, err
		}
		return withoutOwnSpend(budget, txn), nil
	}
	budget, err := s.budgets.FindCurrentBudgetSnapshot(ctx, txn.TeamID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return withoutOwnSpend(budget, txn), nil
}

// withoutOwnSpend removes a stored transaction's own amount from its category's
// spent total so that revalidation does not count it twice.
func withoutOwnSpend(budget *domain.BudgetSnapshot, txn *domain.Transaction) *domain.BudgetSnapshot {
	if budget == nil || txn.Type != domain.TransactionExpense {
		return budget
	}
	if txn.Status != domain.TransactionValidated && txn.Status != domain.TransactionException {
		return budget
	}
	category := txn.EffectiveCategoryID()
	if category == nil {
		return budget
	}
	alloc, ok := budget.Allocation(*category)
	if !ok {
		return budget
	}

	adjusted := *budget
	adjusted.Allocations = make(map[string]domain.BudgetAllocation, len(budget.Allocations))
	for k, v := range budget.Allocations {
		adjusted.Allocations[k] = v
	}
	alloc.CurrentSpent = decimal.Max(alloc.CurrentSpent.Sub(txn.Amount.Abs()), decimal.Zero)
	adjusted.Allocations[*category] = alloc
	return &adjusted
}

func (s *transactionService) loadTeamTransaction(ctx context.Context, teamID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.TeamID != teamID {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return txn, nil
}

func (s *transactionService) notifyIfNeedsReview(ctx context.Context, txn domain.Transaction, actorID string) {
	if txn.ExceptionSeverity == nil {
		return
	}
	switch *txn.ExceptionSeverity {
	case domain.ExceptionSeverityHigh, domain.ExceptionSeverityCritical:
	default:
		return
	}
	codes := make([]string, 0, len(txn.Validation.Violations))
	for _, v := range txn.Validation.Violations {
		codes = append(codes, string(v.Code))
	}
	s.Notify(ctx, domain.Notification{
		Event:   domain.EventTransactionNeedsReview,
		TeamID:  txn.TeamID,
		ActorID: actorID,
		Subject: fmt.Sprintf("Transaction with %s needs review", txn.Vendor),
		Body:    fmt.Sprintf("%s %s flagged %s: %s", txn.Amount.StringFixed(2), txn.CurrencyCode, *txn.ExceptionSeverity, strings.Join(codes, ", ")),
		Attributes: map[string]string{
			"transaction_id": txn.TransactionID,
			"severity":       string(*txn.ExceptionSeverity),
		},
	})
}
