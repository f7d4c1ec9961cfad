package dto

import "github.com/SscSPs/team_cfo_backend/internal/core/domain"

// SubmitApprovalRequest defines the optional note a signer attaches to an approval.
type SubmitApprovalRequest struct {
	Note *string `json:"note" binding:"omitempty,max=1000"`
}

// SubmitApprovalResponse is the new approval and the updated summary.
type SubmitApprovalResponse struct {
	Approval domain.SpendIntentApproval `json:"approval"`
	Summary  domain.ApprovalSummary     `json:"summary"`
}
