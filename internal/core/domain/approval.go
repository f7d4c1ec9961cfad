package domain

import "time"

// SpendIntentApproval is one signer's sign-off on a spend intent.
// IsIndependentParentRep is copied from the signer's authority record when the
// approval is created and is never re-derived afterwards.
type SpendIntentApproval struct {
	ApprovalID             string    `json:"approvalID"`
	SpendIntentID          string    `json:"spendIntentID"`
	ApproverUserID         string    `json:"approverUserID"`
	IsIndependentParentRep bool      `json:"isIndependentParentRep"`
	Note                   *string   `json:"note,omitempty"`
	ApprovedAt             time.Time `json:"approvedAt"`
}

// QuorumStatus is the result of counting approvals against a policy.
type QuorumStatus struct {
	ApprovalsCount               int  `json:"approvalsCount"`
	IndependentRepApprovalsCount int  `json:"independentRepApprovalsCount"`
	RequiredApprovalsCount       int  `json:"requiredApprovalsCount"`
	MinIndependentRepCount       int  `json:"minIndependentParentRepCount"`
	ApprovalsRemaining           int  `json:"approvalsRemaining"`
	IndependentRepsRemaining     int  `json:"independentRepsRemaining"`
	IsAuthorized                 bool `json:"isAuthorized"`
}

// ApprovalSummary describes the approval state of one spend intent.
type ApprovalSummary struct {
	SpendIntentID          string                `json:"spendIntentID"`
	Status                 SpendIntentStatus     `json:"status"`
	RequiresManualApproval bool                  `json:"requiresManualApproval"`
	AuthorizedAt           *time.Time            `json:"authorizedAt,omitempty"`
	Quorum                 QuorumStatus          `json:"quorum"`
	Approvals              []SpendIntentApproval `json:"approvals"`
}

// ApprovalOutcome is returned by a successful approval submission.
type ApprovalOutcome struct {
	Approval SpendIntentApproval `json:"approval"`
	Summary  ApprovalSummary     `json:"summary"`
	// Transitioned is true only for the approval that moved the intent to AUTHORIZED.
	Transitioned bool `json:"transitioned"`
}
