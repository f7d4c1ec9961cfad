package dto

import "github.com/SscSPs/team_cfo_backend/internal/core/domain"

// ListPolicyExceptionsParams defines query parameters for listing policy exceptions.
type ListPolicyExceptionsParams struct {
	ListParams
	Type     *string `form:"type" binding:"omitempty,oneof=ETRANSFER_PAID_WITHOUT_REQUIRED_APPROVAL CHEQUE_MISSING_EVIDENCE UNMATCHED_BANK_TRANSACTION"`
	Severity *string `form:"severity" binding:"omitempty,oneof=WARNING CRITICAL"`
}

// ListPolicyExceptionsResponse wraps a page of policy exceptions.
type ListPolicyExceptionsResponse struct {
	PolicyExceptions []domain.PolicyException `json:"policyExceptions"`
	NextToken        *string                  `json:"nextToken,omitempty"`
}
