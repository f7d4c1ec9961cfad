package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/models"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

type PgxPolicyExceptionRepository struct {
	BaseRepository
}

// newPgxPolicyExceptionRepository creates a new repository for policy exceptions.
func newPgxPolicyExceptionRepository(pool *pgxpool.Pool) portsrepo.PolicyExceptionRepositoryFacade {
	return &PgxPolicyExceptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PolicyExceptionRepositoryFacade = (*PgxPolicyExceptionRepository)(nil)

const policyExceptionColumns = `
	policy_exception_id, team_id, transaction_id, bank_transaction_id, spend_intent_id,
	exception_type, severity, detail, detected_at`

// SavePolicyException persists an exception. Exceptions are append-only.
func (r *PgxPolicyExceptionRepository) SavePolicyException(ctx context.Context, exception domain.PolicyException) error {
	return insertPolicyException(ctx, r.Pool, exception)
}

func insertPolicyException(ctx context.Context, q querier, exception domain.PolicyException) error {
	if err := exception.Validate(); err != nil {
		return fmt.Errorf("policy exception %s: %w: %w", exception.PolicyExceptionID, apperrors.ErrValidation, err)
	}
	m, err := mapping.ToModelPolicyException(exception)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode policy exception", err)
	}
	query := `
		INSERT INTO policy_exceptions (` + policyExceptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = q.Exec(ctx, query,
		m.PolicyExceptionID,
		m.TeamID,
		m.TransactionID,
		m.BankTransactionID,
		m.SpendIntentID,
		m.ExceptionType,
		m.Severity,
		m.Detail,
		m.DetectedAt,
	)
	return mapError(err, "save policy exception "+m.PolicyExceptionID)
}

// ListPolicyExceptionsByTeam retrieves a page of a team's exceptions, newest first.
func (r *PgxPolicyExceptionRepository) ListPolicyExceptionsByTeam(ctx context.Context, teamID string, filter portsrepo.PolicyExceptionFilter, limit int, nextToken *string) ([]domain.PolicyException, *string, error) {
	var k keyset
	query := `SELECT ` + policyExceptionColumns + ` FROM policy_exceptions WHERE team_id = ` + k.arg(teamID)
	if filter.Type != nil {
		query += ` AND exception_type = ` + k.arg(string(*filter.Type))
	}
	if filter.Severity != nil {
		query += ` AND severity = ` + k.arg(string(*filter.Severity))
	}
	cursor, err := k.after(nextToken, "detected_at", "policy_exception_id")
	if err != nil {
		return nil, nil, err
	}
	limitClause, limit := k.limit(limit)
	query += cursor + ` ORDER BY detected_at DESC, policy_exception_id DESC` + limitClause

	rows, err := r.Pool.Query(ctx, query, k.args...)
	if err != nil {
		return nil, nil, mapError(err, "list policy exceptions of team "+teamID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PolicyException])
	if err != nil {
		return nil, nil, mapError(err, "collect policy exceptions of team "+teamID)
	}

	page, next := pageOf(ms, limit, func(m models.PolicyException) (time.Time, string) {
		return m.DetectedAt, m.PolicyExceptionID
	})
	exceptions := make([]domain.PolicyException, 0, len(page))
	for _, m := range page {
		e, err := mapping.ToDomainPolicyException(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode policy exception "+m.PolicyExceptionID, err)
		}
		exceptions = append(exceptions, e)
	}
	return exceptions, next, nil
}
