package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	"github.com/SscSPs/team_cfo_backend/internal/models"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

type PgxSpendIntentRepository struct {
	BaseRepository
}

// newPgxSpendIntentRepository creates a new repository for spend intents and cheque evidence.
func newPgxSpendIntentRepository(pool *pgxpool.Pool) portsrepo.SpendIntentRepositoryFacade {
	return &PgxSpendIntentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SpendIntentRepositoryFacade = (*PgxSpendIntentRepository)(nil)

const spendIntentColumns = `
	spend_intent_id, team_id, amount_cents, currency_code, payment_method,
	vendor_id, vendor_name, payee_user_id, budget_line_item_id, description,
	authorization_type, requires_manual_approval, status, authorized_at,
	created_at, created_by, last_updated_at, last_updated_by`

const chequeColumns = `spend_intent_id, cheque_number, second_signer_user_id, second_signer_name, cheque_image_file_id, recorded_at, recorded_by`

// FindSpendIntentByID retrieves a spend intent by its ID.
func (r *PgxSpendIntentRepository) FindSpendIntentByID(ctx context.Context, spendIntentID string) (*domain.SpendIntent, error) {
	return findSpendIntent(ctx, r.Pool, spendIntentID, false)
}

// findSpendIntent loads one intent, locking its row when forUpdate is set.
func findSpendIntent(ctx context.Context, q querier, spendIntentID string, forUpdate bool) (*domain.SpendIntent, error) {
	query := `SELECT ` + spendIntentColumns + ` FROM spend_intents WHERE spend_intent_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, spendIntentID)
	if err != nil {
		return nil, mapError(err, "find spend intent "+spendIntentID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SpendIntent])
	if err != nil {
		return nil, mapError(err, "find spend intent "+spendIntentID)
	}
	intent := mapping.ToDomainSpendIntent(m)
	return &intent, nil
}

// ListSpendIntentsByTeam retrieves a page of a team's spend intents, newest first.
func (r *PgxSpendIntentRepository) ListSpendIntentsByTeam(ctx context.Context, teamID string, filter portsrepo.SpendIntentFilter, limit int, nextToken *string) ([]domain.SpendIntent, *string, error) {
	var k keyset
	query := `SELECT ` + spendIntentColumns + ` FROM spend_intents WHERE team_id = ` + k.arg(teamID)
	if filter.Status != nil {
		query += ` AND status = ` + k.arg(string(*filter.Status))
	}
	cursor, err := k.after(nextToken, "created_at", "spend_intent_id")
	if err != nil {
		return nil, nil, err
	}
	limitClause, limit := k.limit(limit)
	query += cursor + ` ORDER BY created_at DESC, spend_intent_id DESC` + limitClause

	rows, err := r.Pool.Query(ctx, query, k.args...)
	if err != nil {
		return nil, nil, mapError(err, "list spend intents of team "+teamID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SpendIntent])
	if err != nil {
		return nil, nil, mapError(err, "collect spend intents of team "+teamID)
	}

	page, next := pageOf(ms, limit, func(m models.SpendIntent) (time.Time, string) {
		return m.CreatedAt, m.SpendIntentID
	})
	return mapping.ToDomainSpendIntentSlice(page), next, nil
}

// ListMatchCandidates retrieves the team's matchable spend intents for an amount created in [from, to].
func (r *PgxSpendIntentRepository) ListMatchCandidates(ctx context.Context, teamID string, amountCents int64, from, to time.Time) ([]domain.SpendIntent, error) {
	query := `SELECT ` + spendIntentColumns + `
		FROM spend_intents
		WHERE team_id = $1
		  AND amount_cents = $2
		  AND created_at BETWEEN $3 AND $4
		  AND status IN ('AUTHORIZATION_PENDING', 'AUTHORIZED', 'OUTSTANDING')
		  AND NOT EXISTS (
		      SELECT 1 FROM plaid_bank_transactions b WHERE b.spend_intent_id = spend_intents.spend_intent_id
		  )
		ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, teamID, amountCents, from, to)
	if err != nil {
		return nil, mapError(err, "list match candidates of team "+teamID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SpendIntent])
	if err != nil {
		return nil, mapError(err, "collect match candidates of team "+teamID)
	}
	return mapping.ToDomainSpendIntentSlice(ms), nil
}

// FindChequeMetadata retrieves the cheque evidence of a spend intent.
func (r *PgxSpendIntentRepository) FindChequeMetadata(ctx context.Context, spendIntentID string) (*domain.ChequeMetadata, error) {
	return findChequeMetadata(ctx, r.Pool, spendIntentID)
}

func findChequeMetadata(ctx context.Context, q querier, spendIntentID string) (*domain.ChequeMetadata, error) {
	rows, err := q.Query(ctx, `SELECT `+chequeColumns+` FROM cheque_metadata WHERE spend_intent_id = $1;`, spendIntentID)
	if err != nil {
		return nil, mapError(err, "find cheque metadata of "+spendIntentID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ChequeMetadata])
	if err != nil {
		return nil, mapError(err, "find cheque metadata of "+spendIntentID)
	}
	cheque := mapping.ToDomainChequeMetadata(m)
	return &cheque, nil
}

// findChequeIfAny is findChequeMetadata that treats a missing row as nil.
func findChequeIfAny(ctx context.Context, q querier, spendIntentID string) (*domain.ChequeMetadata, error) {
	cheque, err := findChequeMetadata(ctx, q, spendIntentID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return cheque, err
}

// SaveSpendIntent persists a new spend intent and, when given, its cheque metadata in one transaction.
func (r *PgxSpendIntentRepository) SaveSpendIntent(ctx context.Context, intent domain.SpendIntent, cheque *domain.ChequeMetadata) error {
	m := mapping.ToModelSpendIntent(intent)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO spend_intents (` + spendIntentColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		_, err := tx.Exec(ctx, query,
			m.SpendIntentID,
			m.TeamID,
			m.AmountCents,
			m.CurrencyCode,
			m.PaymentMethod,
			m.VendorID,
			m.VendorName,
			m.PayeeUserID,
			m.BudgetLineItemID,
			m.Description,
			m.AuthorizationType,
			m.RequiresManualApproval,
			m.Status,
			m.AuthorizedAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapError(err, "save spend intent "+m.SpendIntentID)
		}
		if cheque == nil {
			return nil
		}
		return upsertChequeMetadata(ctx, tx, *cheque)
	})
}

// UpsertChequeMetadata inserts or replaces the cheque evidence of a spend intent.
func (r *PgxSpendIntentRepository) UpsertChequeMetadata(ctx context.Context, cheque domain.ChequeMetadata) error {
	return upsertChequeMetadata(ctx, r.Pool, cheque)
}

func upsertChequeMetadata(ctx context.Context, q querier, cheque domain.ChequeMetadata) error {
	m := mapping.ToModelChequeMetadata(cheque)
	query := `
		INSERT INTO cheque_metadata (` + chequeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (spend_intent_id) DO UPDATE SET
			cheque_number = EXCLUDED.cheque_number,
			second_signer_user_id = EXCLUDED.second_signer_user_id,
			second_signer_name = EXCLUDED.second_signer_name,
			cheque_image_file_id = EXCLUDED.cheque_image_file_id,
			recorded_at = EXCLUDED.recorded_at,
			recorded_by = EXCLUDED.recorded_by;
	`
	_, err := q.Exec(ctx, query,
		m.SpendIntentID,
		m.ChequeNumber,
		m.SecondSignerUserID,
		m.SecondSignerName,
		m.ChequeImageFileID,
		m.RecordedAt,
		m.RecordedBy,
	)
	return mapError(err, "save cheque metadata of "+m.SpendIntentID)
}
