package authorization

import "github.com/SscSPs/team_cfo_backend/internal/core/domain"

// EvaluateQuorum counts every approval on an intent against the policy.
// The result only depends on the set of approvals, never on their order.
func EvaluateQuorum(approvals []domain.SpendIntentApproval, policy domain.Policy) domain.QuorumStatus {
	q := domain.QuorumStatus{
		ApprovalsCount:         len(approvals),
		RequiredApprovalsCount: policy.RequiredApprovals,
		MinIndependentRepCount: policy.MinIndependentReps,
	}
	for _, a := range approvals {
		if a.IsIndependentParentRep {
			q.IndependentRepApprovalsCount++
		}
	}
	q.ApprovalsRemaining = max(0, q.RequiredApprovalsCount-q.ApprovalsCount)
	q.IndependentRepsRemaining = max(0, q.MinIndependentRepCount-q.IndependentRepApprovalsCount)
	q.IsAuthorized = q.ApprovalsRemaining == 0 && q.IndependentRepsRemaining == 0
	return q
}
