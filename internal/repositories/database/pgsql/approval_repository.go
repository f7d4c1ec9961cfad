package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/models"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

type PgxApprovalRepository struct {
	BaseRepository
}

// newPgxApprovalRepository creates a new repository for spend intent approvals.
func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

const approvalColumns = `approval_id, spend_intent_id, approver_user_id, is_independent_parent_rep, note, approved_at`

// ListApprovalsBySpendIntent retrieves every approval of a spend intent, oldest first.
func (r *PgxApprovalRepository) ListApprovalsBySpendIntent(ctx context.Context, spendIntentID string) ([]domain.SpendIntentApproval, error) {
	return listApprovals(ctx, r.Pool, spendIntentID)
}

func listApprovals(ctx context.Context, q querier, spendIntentID string) ([]domain.SpendIntentApproval, error) {
	query := `SELECT ` + approvalColumns + `
		FROM spend_intent_approvals
		WHERE spend_intent_id = $1
		ORDER BY approved_at, approval_id;`
	rows, err := q.Query(ctx, query, spendIntentID)
	if err != nil {
		return nil, mapError(err, "list approvals of "+spendIntentID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SpendIntentApproval])
	if err != nil {
		return nil, mapError(err, "collect approvals of "+spendIntentID)
	}
	return mapping.ToDomainApprovalSlice(ms), nil
}

// CreateApprovalAndEvaluate serializes approvals of one intent on its row lock:
// concurrent signers see each other's approvals, so exactly one of them moves
// the intent to AUTHORIZED.
func (r *PgxApprovalRepository) CreateApprovalAndEvaluate(ctx context.Context, spendIntentID, approverUserID string, evaluate portsrepo.ApprovalEvaluator) (*domain.SpendIntent, []domain.SpendIntentApproval, error) {
	var (
		intent    *domain.SpendIntent
		approvals []domain.SpendIntentApproval
	)
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		intent, err = findSpendIntent(ctx, tx, spendIntentID, true)
		if err != nil {
			return err
		}
		approvals, err = listApprovals(ctx, tx, spendIntentID)
		if err != nil {
			return err
		}
		authority, err := findSigningAuthority(ctx, tx, intent.TeamID, approverUserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		plan, err := evaluate(portsrepo.ApprovalState{Intent: *intent, Approvals: approvals, Authority: authority})
		if err != nil {
			return err
		}

		m := mapping.ToModelApproval(plan.Approval)
		insert := `INSERT INTO spend_intent_approvals (` + approvalColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
		if _, err := tx.Exec(ctx, insert,
			m.ApprovalID,
			m.SpendIntentID,
			m.ApproverUserID,
			m.IsIndependentParentRep,
			m.Note,
			m.ApprovedAt,
		); err != nil {
			return mapError(err, "save approval of "+spendIntentID)
		}
		approvals = append(approvals, plan.Approval)

		if plan.AuthorizedAt == nil {
			return nil
		}
		update := `
			UPDATE spend_intents
			SET status = 'AUTHORIZED', authorized_at = $2, last_updated_at = $2, last_updated_by = $3
			WHERE spend_intent_id = $1 AND status = 'AUTHORIZATION_PENDING';
		`
		tag, err := tx.Exec(ctx, update, spendIntentID, *plan.AuthorizedAt, approverUserID)
		if err != nil {
			return mapError(err, "authorize spend intent "+spendIntentID)
		}
		if tag.RowsAffected() == 1 {
			intent.Status = domain.SpendIntentAuthorized
			intent.AuthorizedAt = plan.AuthorizedAt
			intent.LastUpdatedAt = *plan.AuthorizedAt
			intent.LastUpdatedBy = approverUserID
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return intent, approvals, nil
}
