package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/core/rules/authorization"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
	"github.com/SscSPs/team_cfo_backend/internal/utils/accounting"
)

// spendIntentService creates spend intents and decides how they get authorized.
type spendIntentService struct {
	BaseService
	intentRepo portsrepo.SpendIntentRepositoryFacade
	teamRepo   portsrepo.TeamRepositoryFacade
	policySvc  portssvc.TeamPolicySvc
}

// NewSpendIntentService creates a new SpendIntentService.
func NewSpendIntentService(
	intentRepo portsrepo.SpendIntentRepositoryFacade,
	teamRepo portsrepo.TeamRepositoryFacade,
	policySvc portssvc.TeamPolicySvc,
	opts ...Option,
) portssvc.SpendIntentSvcFacade {
	s := &spendIntentService{
		intentRepo: intentRepo,
		teamRepo:   teamRepo,
		policySvc:  policySvc,
	}
	s.apply(opts)
	return s
}

var _ portssvc.SpendIntentSvcFacade = (*spendIntentService)(nil)

func nonEmpty(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// CreateSpendIntent records a planned spend and its authorization decision.
func (s *spendIntentService) CreateSpendIntent(ctx context.Context, teamID string, req dto.CreateSpendIntentRequest, userID string) (*dto.SpendIntentCreation, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}

	var fieldErrs apperrors.ValidationErrors
	vendorName := strings.TrimSpace(req.VendorName)
	if !nonEmpty(req.VendorID) && vendorName == "" {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "vendor", Message: "either vendorID or vendorName is required"})
	}
	if req.Cheque != nil && req.PaymentMethod != string(domain.PaymentMethodCheque) {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "cheque", Message: "cheque details are only accepted for CHEQUE payments"})
	}

	budgetApproved := false
	var budgetLine *string
	if nonEmpty(req.BudgetLineItemID) {
		budgetLine = req.BudgetLineItemID
		item, err := s.teamRepo.FindBudgetLineItem(ctx, teamID, *req.BudgetLineItemID)
		switch {
		case err == nil:
			budgetApproved = item.BudgetStatus.IsApproved()
		case errors.Is(err, apperrors.ErrNotFound):
			fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "budgetLineItemID", Message: "does not exist in this team's budget"})
		default:
			s.LogError(ctx, err, "Failed to load budget line item", slog.String("team_id", teamID))
			return nil, err
		}
	}

	vendorIsKnown := false
	if nonEmpty(req.VendorID) {
		vendor, err := s.teamRepo.FindVendorByID(ctx, teamID, *req.VendorID)
		switch {
		case err == nil:
			vendorIsKnown = vendor.IsWhitelisted
			if vendorName == "" {
				vendorName = vendor.Name
			}
		case errors.Is(err, apperrors.ErrNotFound):
		default:
			s.LogError(ctx, err, "Failed to load vendor", slog.String("team_id", teamID))
			return nil, err
		}
	}

	treasurerIsPayee := false
	if nonEmpty(req.PayeeUserID) {
		payee, err := s.teamRepo.FindTeamMember(ctx, teamID, *req.PayeeUserID)
		switch {
		case err == nil:
			treasurerIsPayee = payee.Role == domain.RoleTreasurer
		case errors.Is(err, apperrors.ErrNotFound):
		default:
			s.LogError(ctx, err, "Failed to load payee membership", slog.String("team_id", teamID))
			return nil, err
		}
	}

	in, err := authorization.ValidateInput(authorization.RawInput{
		Amount:           req.AmountCents,
		PaymentMethod:    req.PaymentMethod,
		BudgetLineItemID: budgetLine,
		BudgetApproved:   &budgetApproved,
		VendorIsKnown:    &vendorIsKnown,
		TreasurerIsPayee: &treasurerIsPayee,
	})
	if err != nil {
		var inputErrs apperrors.ValidationErrors
		if !errors.As(err, &inputErrs) {
			return nil, err
		}
		fieldErrs = append(inputErrs, fieldErrs...)
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	policy, err := s.policySvc.EffectivePolicy(ctx, teamID)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		team, err := s.teamRepo.FindTeamByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		currency = team.CurrencyCode
	}

	decision := authorization.Decide(in, policy)
	now := s.Now()
	intent := domain.SpendIntent{
		SpendIntentID:          uuid.NewString(),
		TeamID:                 teamID,
		AmountCents:            in.AmountCents,
		CurrencyCode:           currency,
		PaymentMethod:          in.PaymentMethod,
		VendorName:             vendorName,
		BudgetLineItemID:       in.BudgetLineItemID,
		Description:            strings.TrimSpace(req.Description),
		AuthorizationType:      decision.AuthorizationType,
		RequiresManualApproval: decision.RequiresManualApproval,
		Status:                 domain.SpendIntentAuthorizationPending,
		AuditFields:            domain.NewAuditFields(userID, now),
	}
	if nonEmpty(req.VendorID) {
		intent.VendorID = req.VendorID
	}
	if nonEmpty(req.PayeeUserID) {
		intent.PayeeUserID = req.PayeeUserID
	}
	if !decision.RequiresManualApproval {
		intent.Status = domain.SpendIntentAuthorized
		intent.AuthorizedAt = &now
	}

	var cheque *domain.ChequeMetadata
	if req.Cheque != nil {
		c := chequeFromRequest(intent.SpendIntentID, *req.Cheque, userID, now)
		cheque = &c
	}

	if err := s.intentRepo.SaveSpendIntent(ctx, intent, cheque); err != nil {
		s.LogError(ctx, err, "Failed to save spend intent", slog.String("team_id", teamID))
		return nil, err
	}

	s.LogInfo(ctx, "Spend intent created",
		slog.String("spend_intent_id", intent.SpendIntentID),
		slog.String("team_id", teamID),
		slog.String("authorization_type", string(intent.AuthorizationType)),
		slog.Int64("amount_cents", intent.AmountCents))

	if intent.Status == domain.SpendIntentAuthorized {
		s.Notify(ctx, authorizedNotification(intent, userID))
	}

	return &dto.SpendIntentCreation{
		Intent:               intent,
		Cheque:               cheque,
		Decision:             decision,
		DualApprovalAdvisory: authorization.DualApprovalAdvisory(intent.AmountCents, policy),
	}, nil
}

// GetSpendIntent returns one spend intent of the team.
func (s *spendIntentService) GetSpendIntent(ctx context.Context, teamID, spendIntentID, userID string) (*domain.SpendIntent, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.loadTeamIntent(ctx, teamID, spendIntentID)
}

// ListSpendIntents pages through the team's spend intents, newest first.
func (s *spendIntentService) ListSpendIntents(ctx context.Context, teamID, userID string, params dto.ListSpendIntentsParams) ([]domain.SpendIntent, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	var filter portsrepo.SpendIntentFilter
	if params.Status != nil {
		status := domain.SpendIntentStatus(*params.Status)
		filter.Status = &status
	}
	intents, next, err := s.intentRepo.ListSpendIntentsByTeam(ctx, teamID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list spend intents", slog.String("team_id", teamID))
		return nil, nil, err
	}
	if intents == nil {
		intents = []domain.SpendIntent{}
	}
	return intents, next, nil
}

// RecordChequeMetadata stores or replaces the cheque evidence of a cheque payment.
func (s *spendIntentService) RecordChequeMetadata(ctx context.Context, teamID, spendIntentID string, req dto.ChequeMetadataRequest, userID string) (*domain.ChequeMetadata, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleMember); err != nil {
		return nil, err
	}
	intent, err := s.loadTeamIntent(ctx, teamID, spendIntentID)
	if err != nil {
		return nil, err
	}
	if intent.PaymentMethod != domain.PaymentMethodCheque {
		return nil, apperrors.InvalidState("cheque details can only be recorded for cheque payments")
	}

	cheque := chequeFromRequest(spendIntentID, req, userID, s.Now())
	if err := s.intentRepo.UpsertChequeMetadata(ctx, cheque); err != nil {
		s.LogError(ctx, err, "Failed to save cheque metadata", slog.String("spend_intent_id", spendIntentID))
		return nil, err
	}
	s.LogInfo(ctx, "Cheque metadata recorded",
		slog.String("spend_intent_id", spendIntentID),
		slog.Bool("second_signer", cheque.HasSecondSigner()),
		slog.Bool("image", cheque.HasImage()))
	return &cheque, nil
}

func (s *spendIntentService) loadTeamIntent(ctx context.Context, teamID, spendIntentID string) (*domain.SpendIntent, error) {
	intent, err := s.intentRepo.FindSpendIntentByID(ctx, spendIntentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load spend intent", slog.String("spend_intent_id", spendIntentID))
		}
		return nil, err
	}
	if intent.TeamID != teamID {
		return nil, fmt.Errorf("spend intent %s: %w", spendIntentID, apperrors.ErrNotFound)
	}
	return intent, nil
}

func chequeFromRequest(spendIntentID string, req dto.ChequeMetadataRequest, userID string, now time.Time) domain.ChequeMetadata {
	return domain.ChequeMetadata{
		SpendIntentID:      spendIntentID,
		ChequeNumber:       strings.TrimSpace(req.ChequeNumber),
		SecondSignerUserID: req.SecondSignerUserID,
		SecondSignerName:   req.SecondSignerName,
		ChequeImageFileID:  req.ChequeImageFileID,
		RecordedAt:         now,
		RecordedBy:         userID,
	}
}

func authorizedNotification(intent domain.SpendIntent, actorID string) domain.Notification {
	return domain.Notification{
		Event:   domain.EventSpendIntentAuthorized,
		TeamID:  intent.TeamID,
		ActorID: actorID,
		Subject: fmt.Sprintf("Payment to %s is authorized", intent.DisplayVendor()),
		Body:    fmt.Sprintf("%s by %s is authorized (%s).", formatAmount(intent), intent.PaymentMethod, intent.AuthorizationType),
		Attributes: map[string]string{
			"spend_intent_id":    intent.SpendIntentID,
			"authorization_type": string(intent.AuthorizationType),
		},
	}
}

func formatAmount(intent domain.SpendIntent) string {
	return accounting.FormatCents(intent.AmountCents) + " " + intent.CurrencyCode
}
