package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/authorization"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/exceptions"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/matching"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
	"github.com/SscSPs/team_cfo_backend/internal/utils/accounting"
)

const reasonAlreadyReconciled = "bank transaction is already reconciled"

// errAlreadyReconciled is returned by the planner when another run linked the
// bank transaction first.
var errAlreadyReconciled = errors.New("bank transaction already reconciled")

// errIntentTaken is returned by the planner when the matched intent was
// settled by another bank transaction after the candidates were read.
var errIntentTaken = errors.New("spend intent already settled")

// maxMatchAttempts bounds how often a reconciliation re-matches after losing
// its intent to a concurrent run.
const maxMatchAttempts = 2

// reconciliationService links bank transactions to spend intents and raises
// policy exceptions for what the link reveals.
type reconciliationService struct {
	BaseService
	bankRepo       portsrepo.BankTransactionReader
	intentRepo     portsrepo.SpendIntentReader
	exceptionRepo  portsrepo.PolicyExceptionRepositoryFacade
	reconciliation portsrepo.ReconciliationRepositoryFacade
	policySvc      portssvc.TeamPolicySvc
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(
	bankRepo portsrepo.BankTransactionReader,
	intentRepo portsrepo.SpendIntentReader,
	exceptionRepo portsrepo.PolicyExceptionRepositoryFacade,
	reconciliation portsrepo.ReconciliationRepositoryFacade,
	policySvc portssvc.TeamPolicySvc,
	opts ...Option,
) portssvc.ReconciliationSvcFacade {
	s := &reconciliationService{
		bankRepo:       bankRepo,
		intentRepo:     intentRepo,
		exceptionRepo:  exceptionRepo,
		reconciliation: reconciliation,
		policySvc:      policySvc,
	}
	s.apply(opts)
	return s
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile matches one bank transaction. Finding no match is a successful
// outcome that leaves a WARNING exception behind. Running it again on a
// linked transaction changes nothing.
func (s *reconciliationService) Reconcile(ctx context.Context, teamID, externalTransactionID, userID string) (*domain.ReconciliationResult, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleManager); err != nil {
		return nil, err
	}

	bankTx, err := s.loadTeamBankTransaction(ctx, teamID, externalTransactionID)
	if err != nil {
		return nil, err
	}
	if bankTx.SpendIntentID != nil {
		return alreadyReconciled(*bankTx), nil
	}

	policy, err := s.policySvc.EffectivePolicy(ctx, teamID)
	if err != nil {
		return nil, err
	}

	window := policy.MatchWindow
	if window <= 0 {
		window = domain.DefaultPolicy().MatchWindow
	}

	now := s.Now()
	for attempt := 1; ; attempt++ {
		candidates, err := s.intentRepo.ListMatchCandidates(ctx, teamID, bankTx.AmountCents,
			bankTx.PostedDate.Add(-window), bankTx.PostedDate.Add(window))
		if err != nil {
			s.LogError(ctx, err, "Failed to load match candidates", slog.String("external_id", externalTransactionID))
			return nil, err
		}

		match := matching.Match(*bankTx, candidates, policy)
		if !match.Matched {
			return s.recordUnmatched(ctx, *bankTx, match)
		}

		plan, err := s.reconciliation.ApplyReconciliation(ctx, bankTx.BankTransactionID, *match.SpendIntentID,
			lockedPlanner(policy, userID, now))
		switch {
		case err == nil:
			return s.reconciled(ctx, *bankTx, match, plan, userID), nil
		case errors.Is(err, errAlreadyReconciled):
			latest, err := s.loadTeamBankTransaction(ctx, teamID, externalTransactionID)
			if err != nil {
				return nil, err
			}
			return alreadyReconciled(*latest), nil
		case errors.Is(err, errIntentTaken) && attempt < maxMatchAttempts:
			s.LogInfo(ctx, "Matched spend intent was settled concurrently, matching again",
				slog.String("external_id", externalTransactionID),
				slog.String("spend_intent_id", *match.SpendIntentID))
		case errors.Is(err, errIntentTaken):
			return s.recordUnmatched(ctx, *bankTx, domain.MatchResult{
				Reason:     fmt.Sprintf("matched spend intent %s was settled by another bank transaction", *match.SpendIntentID),
				Candidates: match.Candidates,
			})
		default:
			s.LogError(ctx, err, "Failed to apply reconciliation",
				slog.String("external_id", externalTransactionID),
				slog.String("spend_intent_id", *match.SpendIntentID))
			return nil, err
		}
	}
}

// lockedPlanner re-checks both locked rows before planning. The candidate list
// was read without locks, so the intent may have been settled since.
func lockedPlanner(policy domain.Policy, userID string, now time.Time) portsrepo.ReconciliationPlanner {
	return func(state portsrepo.ReconciliationState) (portsrepo.ReconciliationPlan, error) {
		if state.BankTransaction.SpendIntentID != nil {
			return portsrepo.ReconciliationPlan{}, errAlreadyReconciled
		}
		if !state.Intent.Status.IsMatchable() {
			return portsrepo.ReconciliationPlan{}, errIntentTaken
		}
		if l := state.Ledger; l != nil && l.BankTransactionID != nil && *l.BankTransactionID != state.BankTransaction.BankTransactionID {
			return portsrepo.ReconciliationPlan{}, errIntentTaken
		}
		return planReconciliation(state, policy, userID, now), nil
	}
}

func (s *reconciliationService) reconciled(ctx context.Context, bankTx domain.PlaidBankTransaction, match domain.MatchResult, plan *portsrepo.ReconciliationPlan, userID string) *domain.ReconciliationResult {
	ledgerID := plan.Ledger.TransactionID
	s.LogInfo(ctx, "Bank transaction reconciled",
		slog.String("external_id", bankTx.ExternalTransactionID),
		slog.String("spend_intent_id", *match.SpendIntentID),
		slog.Bool("ledger_created", plan.CreateLedger),
		slog.Int("exceptions", len(plan.Exceptions)))

	for _, e := range plan.Exceptions {
		if e.Severity == domain.PolicySeverityCritical {
			s.Notify(ctx, exceptionNotification(e, bankTx, userID))
		}
	}

	return &domain.ReconciliationResult{
		Success:           true,
		Matched:           true,
		BankTransactionID: bankTx.BankTransactionID,
		SpendIntentID:     match.SpendIntentID,
		TransactionID:     &ledgerID,
		Reason:            match.Reason,
		Candidates:        match.Candidates,
		Exceptions:        plan.Exceptions,
	}
}

// planReconciliation decides every write of a matched reconciliation from the
// locked state.
func planReconciliation(state portsrepo.ReconciliationState, policy domain.Policy, userID string, now time.Time) portsrepo.ReconciliationPlan {
	intent := state.Intent
	bankTx := state.BankTransaction
	intentID := intent.SpendIntentID
	bankID := bankTx.BankTransactionID

	plan := portsrepo.ReconciliationPlan{
		SettleIntent: intent.Status.CanAdvanceTo(domain.SpendIntentSettled),
	}
	if state.Ledger != nil {
		plan.Ledger = *state.Ledger
		plan.Ledger.SpendIntentID = &intentID
		plan.Ledger.BankTransactionID = &bankID
		plan.Ledger.LastUpdatedAt = now
		plan.Ledger.LastUpdatedBy = userID
	} else {
		vendor := intent.DisplayVendor()
		if vendor == "" {
			vendor = bankTx.Description()
		}
		description := intent.Description
		if description == "" {
			description = bankTx.Description()
		}
		plan.CreateLedger = true
		plan.Ledger = domain.Transaction{
			TransactionID:     uuid.NewString(),
			TeamID:            intent.TeamID,
			Type:              domain.TransactionExpense,
			Status:            domain.TransactionValidated,
			Amount:            accounting.FromCents(bankTx.AmountCents),
			CurrencyCode:      bankTx.CurrencyCode,
			Vendor:            vendor,
			Description:       description,
			TransactionDate:   bankTx.PostedDate,
			SpendIntentID:     &intentID,
			BankTransactionID: &bankID,
			AuditFields:       domain.NewAuditFields(userID, now),
		}
	}

	quorum := authorization.EvaluateQuorum(state.Approvals, policy)
	plan.Exceptions = exceptions.Detect(intent, bankTx, quorum, state.Cheque, policy)
	ledgerID := plan.Ledger.TransactionID
	for i := range plan.Exceptions {
		exceptions.Stamp(&plan.Exceptions[i], uuid.NewString(), &ledgerID, now)
	}
	return plan
}

func (s *reconciliationService) recordUnmatched(ctx context.Context, bankTx domain.PlaidBankTransaction, match domain.MatchResult) (*domain.ReconciliationResult, error) {
	exception := exceptions.BuildUnmatchedException(bankTx, match.Reason)
	exceptions.Stamp(&exception, uuid.NewString(), nil, s.Now())
	if err := s.exceptionRepo.SavePolicyException(ctx, exception); err != nil {
		s.LogError(ctx, err, "Failed to save unmatched bank transaction exception",
			slog.String("external_id", bankTx.ExternalTransactionID))
		return nil, err
	}
	s.LogInfo(ctx, "Bank transaction left unmatched",
		slog.String("external_id", bankTx.ExternalTransactionID),
		slog.String("reason", match.Reason))

	return &domain.ReconciliationResult{
		Success:           true,
		Matched:           false,
		BankTransactionID: bankTx.BankTransactionID,
		Reason:            match.Reason,
		Candidates:        match.Candidates,
		Exceptions:        []domain.PolicyException{exception},
	}, nil
}

// ListPolicyExceptions pages through the team's exceptions, newest first.
func (s *reconciliationService) ListPolicyExceptions(ctx context.Context, teamID, userID string, params dto.ListPolicyExceptionsParams) ([]domain.PolicyException, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	var filter portsrepo.PolicyExceptionFilter
	if params.Type != nil {
		t := domain.PolicyExceptionType(*params.Type)
		filter.Type = &t
	}
	if params.Severity != nil {
		sev := domain.PolicyExceptionSeverity(*params.Severity)
		filter.Severity = &sev
	}
	items, next, err := s.exceptionRepo.ListPolicyExceptionsByTeam(ctx, teamID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list policy exceptions", slog.String("team_id", teamID))
		return nil, nil, err
	}
	if items == nil {
		items = []domain.PolicyException{}
	}
	return items, next, nil
}

func (s *reconciliationService) loadTeamBankTransaction(ctx context.Context, teamID, externalTransactionID string) (*domain.PlaidBankTransaction, error) {
	bankTx, err := s.bankRepo.FindBankTransactionByExternalID(ctx, externalTransactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load bank transaction", slog.String("external_id", externalTransactionID))
		}
		return nil, err
	}
	if bankTx.TeamID != teamID {
		return nil, fmt.Errorf("bank transaction %s: %w", externalTransactionID, apperrors.ErrNotFound)
	}
	return bankTx, nil
}

func alreadyReconciled(bankTx domain.PlaidBankTransaction) *domain.ReconciliationResult {
	return &domain.ReconciliationResult{
		Success:           true,
		Matched:           true,
		AlreadyReconciled: true,
		BankTransactionID: bankTx.BankTransactionID,
		SpendIntentID:     bankTx.SpendIntentID,
		Reason:            reasonAlreadyReconciled,
		Candidates:        []domain.MatchCandidate{},
		Exceptions:        []domain.PolicyException{},
	}
}

func exceptionNotification(e domain.PolicyException, bankTx domain.PlaidBankTransaction, actorID string) domain.Notification {
	attrs := map[string]string{
		"policy_exception_id": e.PolicyExceptionID,
		"type":                string(e.Type),
		"external_id":         bankTx.ExternalTransactionID,
	}
	if e.SpendIntentID != nil {
		attrs["spend_intent_id"] = *e.SpendIntentID
	}
	return domain.Notification{
		Event:      domain.EventPolicyExceptionRaised,
		TeamID:     e.TeamID,
		ActorID:    actorID,
		Subject:    fmt.Sprintf("%s policy exception: %s", e.Severity, e.Type),
		Body:       fmt.Sprintf("Bank transaction %s of %s %s posted %s raised %s.", bankTx.ExternalTransactionID, accounting.FormatCents(bankTx.AmountCents), bankTx.CurrencyCode, bankTx.PostedDate.Format(time.DateOnly), e.Type),
		Attributes: attrs,
	}
}
