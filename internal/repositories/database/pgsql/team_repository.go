package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/models"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for teams, memberships,
// signing authorities, budgets and vendors.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

const signingAuthorityColumns = `team_id, user_id, is_active, is_independent_parent_rep, title, appointed_at, appointed_by, revoked_at`

// spentExpr sums booked expenses of a category against a budget: rows linked to
// the budget, or unlinked rows dated inside its season.
const spentExpr = `
	COALESCE((
		SELECT SUM(t.amount)
		FROM transactions t
		WHERE t.team_id = b.team_id
		  AND t.transaction_type = 'EXPENSE'
		  AND t.status IN ('VALIDATED', 'EXCEPTION', 'RESOLVED')
		  AND COALESCE(NULLIF(t.category_id, ''), t.system_category_id) = li.category_id
		  AND (t.budget_id = b.budget_id
		       OR (t.budget_id IS NULL AND t.transaction_date::date BETWEEN b.starts_on AND b.ends_on))
	), 0)`

// FindTeamByID retrieves a team by its ID.
func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT team_id, name, association_id, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM teams
		WHERE team_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, mapError(err, "find team "+teamID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Team])
	if err != nil {
		return nil, mapError(err, "find team "+teamID)
	}
	team := mapping.ToDomainTeam(m)
	return &team, nil
}

// FindTeamMember retrieves the membership of a user in a team.
func (r *PgxTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT team_id, user_id, user_name, role, joined_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, teamID, userID)
	if err != nil {
		return nil, mapError(err, "find member "+userID+" of team "+teamID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TeamMember])
	if err != nil {
		return nil, mapError(err, "find member "+userID+" of team "+teamID)
	}
	member := mapping.ToDomainTeamMember(m)
	return &member, nil
}

// FindTeamSettings retrieves the per-team policy overrides.
func (r *PgxTeamRepository) FindTeamSettings(ctx context.Context, teamID string) (*domain.TeamSettings, error) {
	query := `
		SELECT team_id, required_approvals, min_independent_reps, dual_approval_threshold_cents,
		       receipt_threshold, transaction_limit, category_overrun_tolerance_percent,
		       cash_like_requires_review, cheque_image_threshold_cents
		FROM team_settings
		WHERE team_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, mapError(err, "find settings of team "+teamID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.TeamSettings])
	if err != nil {
		return nil, mapError(err, "find settings of team "+teamID)
	}
	settings := mapping.ToDomainTeamSettings(m)
	return &settings, nil
}

// FindSigningAuthority retrieves the signing authority record of a user, active or not.
func (r *PgxTeamRepository) FindSigningAuthority(ctx context.Context, teamID, userID string) (*domain.TeamSigningAuthority, error) {
	return findSigningAuthority(ctx, r.Pool, teamID, userID)
}

func findSigningAuthority(ctx context.Context, q querier, teamID, userID string) (*domain.TeamSigningAuthority, error) {
	query := `SELECT ` + signingAuthorityColumns + `
		FROM team_signing_authorities
		WHERE team_id = $1 AND user_id = $2;`
	rows, err := q.Query(ctx, query, teamID, userID)
	if err != nil {
		return nil, mapError(err, "find signing authority of "+userID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SigningAuthority])
	if err != nil {
		return nil, mapError(err, "find signing authority of "+userID)
	}
	authority := mapping.ToDomainSigningAuthority(m)
	return &authority, nil
}

// SaveSigningAuthority inserts a new signing authority.
func (r *PgxTeamRepository) SaveSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error {
	m := mapping.ToModelSigningAuthority(authority)
	query := `
		INSERT INTO team_signing_authorities (` + signingAuthorityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TeamID,
		m.UserID,
		m.IsActive,
		m.IsIndependentParentRep,
		m.Title,
		m.AppointedAt,
		m.AppointedBy,
		m.RevokedAt,
	)
	return mapError(err, "save signing authority of "+m.UserID)
}

// UpdateSigningAuthority updates the flags of an existing record. Past approvals are untouched.
func (r *PgxTeamRepository) UpdateSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error {
	m := mapping.ToModelSigningAuthority(authority)
	query := `
		UPDATE team_signing_authorities
		SET is_active = $3, is_independent_parent_rep = $4, title = $5, revoked_at = $6
		WHERE team_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, m.TeamID, m.UserID, m.IsActive, m.IsIndependentParentRep, m.Title, m.RevokedAt)
	if err != nil {
		return mapError(err, "update signing authority of "+m.UserID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("signing authority of %s: %w", m.UserID, apperrors.ErrNotFound)
	}
	return nil
}

// FindBudgetLineItem retrieves a budget line item together with its budget's status.
func (r *PgxTeamRepository) FindBudgetLineItem(ctx context.Context, teamID, lineItemID string) (*domain.BudgetLineItem, error) {
	query := `
		SELECT li.line_item_id, li.budget_id, b.team_id, li.category_id, b.status AS budget_status
		FROM budget_line_items li
		JOIN budgets b ON b.budget_id = li.budget_id
		WHERE b.team_id = $1 AND li.line_item_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, teamID, lineItemID)
	if err != nil {
		return nil, mapError(err, "find budget line item "+lineItemID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BudgetLineItem])
	if err != nil {
		return nil, mapError(err, "find budget line item "+lineItemID)
	}
	item := mapping.ToDomainBudgetLineItem(m)
	return &item, nil
}

// FindBudgetSnapshot retrieves a budget with per-category allocated and spent amounts.
func (r *PgxTeamRepository) FindBudgetSnapshot(ctx context.Context, teamID, budgetID string) (*domain.BudgetSnapshot, error) {
	return r.budgetSnapshot(ctx, `WHERE b.team_id = $1 AND b.budget_id = $2`, teamID, budgetID)
}

// FindCurrentBudgetSnapshot retrieves the team's most recent approved budget.
func (r *PgxTeamRepository) FindCurrentBudgetSnapshot(ctx context.Context, teamID string) (*domain.BudgetSnapshot, error) {
	return r.budgetSnapshot(ctx, `WHERE b.team_id = $1 AND b.status IN ('APPROVED', 'LOCKED')`, teamID)
}

func (r *PgxTeamRepository) budgetSnapshot(ctx context.Context, filter string, args ...any) (*domain.BudgetSnapshot, error) {
	var budgetID, status string
	headerQuery := `SELECT b.budget_id, b.status FROM budgets b ` + filter + ` ORDER BY b.starts_on DESC, b.created_at DESC LIMIT 1;`
	if err := r.Pool.QueryRow(ctx, headerQuery, args...).Scan(&budgetID, &status); err != nil {
		return nil, mapError(err, "find budget")
	}

	query := `
		SELECT b.budget_id, b.status AS budget_status, li.category_id, li.allocated,` + spentExpr + ` AS current_spent
		FROM budgets b
		JOIN budget_line_items li ON li.budget_id = b.budget_id
		WHERE b.budget_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, mapError(err, "query allocations of budget "+budgetID)
	}
	allocations, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BudgetAllocation])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "collect allocations of budget "+budgetID)
	}

	snapshot := mapping.ToDomainBudgetSnapshot(budgetID, status, allocations)
	return &snapshot, nil
}

// FindVendorByID retrieves a vendor owned by the team.
func (r *PgxTeamRepository) FindVendorByID(ctx context.Context, teamID, vendorID string) (*domain.Vendor, error) {
	query := `
		SELECT vendor_id, team_id, name, is_whitelisted
		FROM vendors
		WHERE team_id = $1 AND vendor_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, teamID, vendorID)
	if err != nil {
		return nil, mapError(err, "find vendor "+vendorID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Vendor])
	if err != nil {
		return nil, mapError(err, "find vendor "+vendorID)
	}
	vendor := mapping.ToDomainVendor(m)
	return &vendor, nil
}
