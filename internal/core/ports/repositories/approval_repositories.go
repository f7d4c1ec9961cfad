package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// ApprovalState is what an approval decision is made on. It is read while the
// spend intent row is locked.
type ApprovalState struct {
	Intent    domain.SpendIntent
	Approvals []domain.SpendIntentApproval
	// Authority is the approver's active signing authority, nil if none.
	Authority *domain.TeamSigningAuthority
}

// ApprovalPlan is what the repository writes for an accepted approval.
type ApprovalPlan struct {
	Approval domain.SpendIntentApproval
	// AuthorizedAt, when set, moves the intent from AUTHORIZATION_PENDING to AUTHORIZED.
	AuthorizedAt *time.Time
}

// ApprovalEvaluator decides on an approval. Returning an error aborts the write.
type ApprovalEvaluator func(state ApprovalState) (ApprovalPlan, error)

// ApprovalReader defines read operations for approvals.
type ApprovalReader interface {
	// ListApprovalsBySpendIntent retrieves every approval of a spend intent, oldest first.
	ListApprovalsBySpendIntent(ctx context.Context, spendIntentID string) ([]domain.SpendIntentApproval, error)
}

// ApprovalWriter defines the atomic approval write.
type ApprovalWriter interface {
	// CreateApprovalAndEvaluate locks the spend intent, loads its approvals and the
	// approver's authority, runs evaluate and applies the plan in the same database
	// transaction. A second approval by the same approver returns apperrors.ErrDuplicate.
	// It returns the intent and all approvals as committed.
	CreateApprovalAndEvaluate(ctx context.Context, spendIntentID, approverUserID string, evaluate ApprovalEvaluator) (*domain.SpendIntent, []domain.SpendIntentApproval, error)
}

// ApprovalRepositoryFacade combines all approval repository interfaces.
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
