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
)

// Messages shown to approvers. They are specific on purpose so a volunteer
// treasurer knows what to do next.
const (
	msgApprovalNotRequired = "this payment does not require manual approval"
	msgAlreadyAuthorized   = "this payment is already authorized"
	msgAlreadyApproved     = "you have already approved this payment"
	msgSelfApproval        = "you cannot approve a payment to yourself"
)

// approvalService drives the spend intent approval state machine.
type approvalService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepositoryFacade
	intentRepo   portsrepo.SpendIntentReader
	policySvc    portssvc.TeamPolicySvc
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	intentRepo portsrepo.SpendIntentReader,
	policySvc portssvc.TeamPolicySvc,
	opts ...Option,
) portssvc.ApprovalSvcFacade {
	s := &approvalService{
		approvalRepo: approvalRepo,
		intentRepo:   intentRepo,
		policySvc:    policySvc,
	}
	s.apply(opts)
	return s
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// SubmitApproval records one signer's approval and authorizes the intent when
// the approval completes the quorum. The whole check-insert-transition runs
// with the intent row locked.
func (s *approvalService) SubmitApproval(ctx context.Context, teamID, spendIntentID, approverUserID string, note *string) (*domain.ApprovalOutcome, error) {
	if s.TeamAuthorizer == nil {
		return nil, apperrors.Forbidden("signing authority cannot be verified")
	}
	if _, err := s.TeamAuthorizer.RequireSigningAuthority(ctx, approverUserID, teamID); err != nil {
		return nil, err
	}

	policy, err := s.policySvc.EffectivePolicy(ctx, teamID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var plan portsrepo.ApprovalPlan
	intent, approvals, err := s.approvalRepo.CreateApprovalAndEvaluate(ctx, spendIntentID, approverUserID,
		func(state portsrepo.ApprovalState) (portsrepo.ApprovalPlan, error) {
			p, err := planApproval(state, teamID, approverUserID, note, policy, now)
			if err != nil {
				return portsrepo.ApprovalPlan{}, err
			}
			plan = p
			return p, nil
		})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Conflict(msgAlreadyApproved)
		}
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrForbidden) {
			s.LogError(ctx, err, "Failed to record approval",
				slog.String("spend_intent_id", spendIntentID),
				slog.String("approver_user_id", approverUserID))
		}
		return nil, err
	}

	quorum := authorization.EvaluateQuorum(approvals, policy)
	transitioned := plan.AuthorizedAt != nil && intent.Status == domain.SpendIntentAuthorized

	s.LogInfo(ctx, "Approval recorded",
		slog.String("spend_intent_id", spendIntentID),
		slog.String("approver_user_id", approverUserID),
		slog.Bool("independent_parent_rep", plan.Approval.IsIndependentParentRep),
		slog.Int("approvals", quorum.ApprovalsCount),
		slog.Bool("authorized", transitioned))

	s.Notify(ctx, domain.Notification{
		Event:   domain.EventApprovalRecorded,
		TeamID:  teamID,
		ActorID: approverUserID,
		Subject: fmt.Sprintf("Approval recorded for %s to %s", formatAmount(*intent), intent.DisplayVendor()),
		Body: fmt.Sprintf("%d of %d approvals, %d of %d independent parent representatives.",
			quorum.ApprovalsCount, quorum.RequiredApprovalsCount, quorum.IndependentRepApprovalsCount, quorum.MinIndependentRepCount),
		Attributes: map[string]string{"spend_intent_id": spendIntentID},
	})
	if transitioned {
		s.Notify(ctx, authorizedNotification(*intent, approverUserID))
	}

	return &domain.ApprovalOutcome{
		Approval:     plan.Approval,
		Summary:      buildApprovalSummary(*intent, approvals, quorum),
		Transitioned: transitioned,
	}, nil
}

// planApproval applies the approval rules to the locked state. Checks run in
// a fixed order so the caller always sees the most fundamental problem first.
func planApproval(state portsrepo.ApprovalState, teamID, approverUserID string, note *string, policy domain.Policy, now time.Time) (portsrepo.ApprovalPlan, error) {
	intent := state.Intent
	if intent.TeamID != teamID {
		return portsrepo.ApprovalPlan{}, fmt.Errorf("spend intent %s: %w", intent.SpendIntentID, apperrors.ErrNotFound)
	}
	if !intent.RequiresManualApproval {
		return portsrepo.ApprovalPlan{}, apperrors.InvalidState(msgApprovalNotRequired)
	}
	for _, a := range state.Approvals {
		if a.ApproverUserID == approverUserID {
			return portsrepo.ApprovalPlan{}, apperrors.Conflict(msgAlreadyApproved)
		}
	}
	if intent.Status != domain.SpendIntentAuthorizationPending {
		return portsrepo.ApprovalPlan{}, apperrors.InvalidState(msgAlreadyAuthorized)
	}
	if intent.IsPayee(approverUserID) {
		return portsrepo.ApprovalPlan{}, apperrors.Forbidden(msgSelfApproval)
	}

	approval := domain.SpendIntentApproval{
		ApprovalID:             uuid.NewString(),
		SpendIntentID:          intent.SpendIntentID,
		ApproverUserID:         approverUserID,
		IsIndependentParentRep: state.Authority != nil && state.Authority.IsActive && state.Authority.IsIndependentParentRep,
		Note:                   note,
		ApprovedAt:             now,
	}

	all := make([]domain.SpendIntentApproval, 0, len(state.Approvals)+1)
	all = append(all, state.Approvals...)
	all = append(all, approval)

	plan := portsrepo.ApprovalPlan{Approval: approval}
	if authorization.EvaluateQuorum(all, policy).IsAuthorized {
		plan.AuthorizedAt = &now
	}
	return plan, nil
}

// GetApprovalSummary reports the approvals and quorum state of a spend intent.
func (s *approvalService) GetApprovalSummary(ctx context.Context, teamID, spendIntentID, userID string) (*domain.ApprovalSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	intent, err := s.intentRepo.FindSpendIntentByID(ctx, spendIntentID)
	if err != nil {
		return nil, err
	}
	if intent.TeamID != teamID {
		return nil, fmt.Errorf("spend intent %s: %w", spendIntentID, apperrors.ErrNotFound)
	}
	approvals, err := s.approvalRepo.ListApprovalsBySpendIntent(ctx, spendIntentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approvals", slog.String("spend_intent_id", spendIntentID))
		return nil, err
	}
	policy, err := s.policySvc.EffectivePolicy(ctx, teamID)
	if err != nil {
		return nil, err
	}
	summary := buildApprovalSummary(*intent, approvals, authorization.EvaluateQuorum(approvals, policy))
	return &summary, nil
}

func buildApprovalSummary(intent domain.SpendIntent, approvals []domain.SpendIntentApproval, quorum domain.QuorumStatus) domain.ApprovalSummary {
	if approvals == nil {
		approvals = []domain.SpendIntentApproval{}
	}
	return domain.ApprovalSummary{
		SpendIntentID:          intent.SpendIntentID,
		Status:                 intent.Status,
		RequiresManualApproval: intent.RequiresManualApproval,
		AuthorizedAt:           intent.AuthorizedAt,
		Quorum:                 quorum,
		Approvals:              approvals,
	}
}
