package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// ApprovalSvcFacade records signer approvals against pending spend intents.
type ApprovalSvcFacade interface {
	// SubmitApproval records one signer's approval and authorizes the intent once quorum is met.
	SubmitApproval(ctx context.Context, teamID, spendIntentID, approverUserID string, note *string) (*domain.ApprovalOutcome, error)

	// GetApprovalSummary returns the approvals and quorum state of a spend intent.
	GetApprovalSummary(ctx context.Context, teamID, spendIntentID, userID string) (*domain.ApprovalSummary, error)
}
