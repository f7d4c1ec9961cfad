package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

// --- Team repository ---

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) FindTeamSettings(ctx context.Context, teamID string) (*domain.TeamSettings, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamSettings), args.Error(1)
}

func (m *MockTeamRepository) FindSigningAuthority(ctx context.Context, teamID, userID string) (*domain.TeamSigningAuthority, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamSigningAuthority), args.Error(1)
}

func (m *MockTeamRepository) SaveSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error {
	args := m.Called(ctx, authority)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error {
	args := m.Called(ctx, authority)
	return args.Error(0)
}

func (m *MockTeamRepository) FindBudgetLineItem(ctx context.Context, teamID, lineItemID string) (*domain.BudgetLineItem, error) {
	args := m.Called(ctx, teamID, lineItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetLineItem), args.Error(1)
}

func (m *MockTeamRepository) FindBudgetSnapshot(ctx context.Context, teamID, budgetID string) (*domain.BudgetSnapshot, error) {
	args := m.Called(ctx, teamID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSnapshot), args.Error(1)
}

func (m *MockTeamRepository) FindCurrentBudgetSnapshot(ctx context.Context, teamID string) (*domain.BudgetSnapshot, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSnapshot), args.Error(1)
}

func (m *MockTeamRepository) FindVendorByID(ctx context.Context, teamID, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, teamID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

// --- Team service (authorizer + policy) ---

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) AuthorizeUserAction(ctx context.Context, userID, teamID string, requiredRole domain.TeamRole) error {
	args := m.Called(ctx, userID, teamID, requiredRole)
	return args.Error(0)
}

func (m *MockTeamService) RequireSigningAuthority(ctx context.Context, userID, teamID string) (*domain.TeamSigningAuthority, error) {
	args := m.Called(ctx, userID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamSigningAuthority), args.Error(1)
}

func (m *MockTeamService) EffectivePolicy(ctx context.Context, teamID string) (domain.Policy, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(domain.Policy), args.Error(1)
}

func (m *MockTeamService) AppointSigningAuthority(ctx context.Context, teamID string, req dto.AppointSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error) {
	args := m.Called(ctx, teamID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamSigningAuthority), args.Error(1)
}

func (m *MockTeamService) UpdateSigningAuthority(ctx context.Context, teamID, targetUserID string, req dto.UpdateSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error) {
	args := m.Called(ctx, teamID, targetUserID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamSigningAuthority), args.Error(1)
}

// --- Spend intent repository ---

type MockSpendIntentRepository struct {
	mock.Mock
}

func (m *MockSpendIntentRepository) FindSpendIntentByID(ctx context.Context, spendIntentID string) (*domain.SpendIntent, error) {
	args := m.Called(ctx, spendIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpendIntent), args.Error(1)
}

func (m *MockSpendIntentRepository) ListSpendIntentsByTeam(ctx context.Context, teamID string, filter portsrepo.SpendIntentFilter, limit int, nextToken *string) ([]domain.SpendIntent, *string, error) {
	args := m.Called(ctx, teamID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.SpendIntent), next, args.Error(2)
}

func (m *MockSpendIntentRepository) ListMatchCandidates(ctx context.Context, teamID string, amountCents int64, from, to time.Time) ([]domain.SpendIntent, error) {
	args := m.Called(ctx, teamID, amountCents, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpendIntent), args.Error(1)
}

func (m *MockSpendIntentRepository) FindChequeMetadata(ctx context.Context, spendIntentID string) (*domain.ChequeMetadata, error) {
	args := m.Called(ctx, spendIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChequeMetadata), args.Error(1)
}

func (m *MockSpendIntentRepository) SaveSpendIntent(ctx context.Context, intent domain.SpendIntent, cheque *domain.ChequeMetadata) error {
	args := m.Called(ctx, intent, cheque)
	return args.Error(0)
}

func (m *MockSpendIntentRepository) UpsertChequeMetadata(ctx context.Context, cheque domain.ChequeMetadata) error {
	args := m.Called(ctx, cheque)
	return args.Error(0)
}

// --- Transaction repository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByTeam(ctx context.Context, teamID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, teamID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionState(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Bank transaction repository ---

type MockBankTransactionRepository struct {
	mock.Mock
}

func (m *MockBankTransactionRepository) FindBankTransactionByExternalID(ctx context.Context, externalTransactionID string) (*domain.PlaidBankTransaction, error) {
	args := m.Called(ctx, externalTransactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaidBankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) UpsertBankTransaction(ctx context.Context, tx domain.PlaidBankTransaction) (domain.UpsertOutcome, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(domain.UpsertOutcome), args.Error(1)
}

// --- Policy exception repository ---

type MockPolicyExceptionRepository struct {
	mock.Mock
}

func (m *MockPolicyExceptionRepository) SavePolicyException(ctx context.Context, exception domain.PolicyException) error {
	args := m.Called(ctx, exception)
	return args.Error(0)
}

func (m *MockPolicyExceptionRepository) ListPolicyExceptionsByTeam(ctx context.Context, teamID string, filter portsrepo.PolicyExceptionFilter, limit int, nextToken *string) ([]domain.PolicyException, *string, error) {
	args := m.Called(ctx, teamID, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.PolicyException), next, args.Error(2)
}

// --- Reconciliation repository ---

// MockReconciliationRepository runs the planner against a canned locked state.
type MockReconciliationRepository struct {
	mock.Mock
}

func (m *MockReconciliationRepository) ApplyReconciliation(ctx context.Context, bankTransactionID, spendIntentID string, plan portsrepo.ReconciliationPlanner) (*portsrepo.ReconciliationPlan, error) {
	args := m.Called(ctx, bankTransactionID, spendIntentID, plan)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	state := args.Get(0).(portsrepo.ReconciliationState)
	p, err := plan(state)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Notifier ---

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

func (r *recordingNotifier) Events() []domain.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.NotificationEvent, len(r.events))
	for i, n := range r.events {
		out[i] = n.Event
	}
	return out
}
