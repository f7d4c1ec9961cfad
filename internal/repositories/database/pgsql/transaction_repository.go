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

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the team ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, team_id, transaction_type, status, amount, currency_code, vendor, description,
	category_id, system_category_id, budget_id, receipt_url, transaction_date, validation,
	exception_severity, spend_intent_id, bank_transaction_id, resolution,
	created_at, created_by, last_updated_at, last_updated_by`

// FindTransactionByID retrieves a ledger transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, `transaction_id = $1`, transactionID)
}

// findTransaction loads the first transaction matching where.
func findTransaction(ctx context.Context, q querier, where string, args ...any) (*domain.Transaction, error) {
	rows, err := q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE `+where+` ORDER BY created_at LIMIT 1;`, args...)
	if err != nil {
		return nil, mapError(err, "find transaction")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, mapError(err, "find transaction")
	}
	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode transaction "+m.TransactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByTeam retrieves a page of a team's ledger, newest transaction date first.
func (r *PgxTransactionRepository) ListTransactionsByTeam(ctx context.Context, teamID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var k keyset
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE team_id = ` + k.arg(teamID)
	if filter.Status != nil {
		query += ` AND status = ` + k.arg(string(*filter.Status))
	}
	cursor, err := k.after(nextToken, "transaction_date", "transaction_id")
	if err != nil {
		return nil, nil, err
	}
	limitClause, limit := k.limit(limit)
	query += cursor + ` ORDER BY transaction_date DESC, transaction_id DESC` + limitClause

	rows, err := r.Pool.Query(ctx, query, k.args...)
	if err != nil {
		return nil, nil, mapError(err, "list transactions of team "+teamID)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, mapError(err, "collect transactions of team "+teamID)
	}

	page, next := pageOf(ms, limit, func(m models.Transaction) (time.Time, string) {
		return m.TransactionDate, m.TransactionID
	})
	txns, err := mapping.ToDomainTransactionSlice(page)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to decode transactions of team "+teamID, err)
	}
	return txns, next, nil
}

// SaveTransaction persists a new ledger transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	return insertTransaction(ctx, r.Pool, txn)
}

func insertTransaction(ctx context.Context, q querier, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction", err)
	}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = q.Exec(ctx, query,
		m.TransactionID,
		m.TeamID,
		m.TransactionType,
		m.Status,
		m.Amount,
		m.CurrencyCode,
		m.Vendor,
		m.Description,
		m.CategoryID,
		m.SystemCategoryID,
		m.BudgetID,
		m.ReceiptURL,
		m.TransactionDate,
		m.Validation,
		m.ExceptionSeverity,
		m.SpendIntentID,
		m.BankTransactionID,
		m.Resolution,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "save transaction "+m.TransactionID)
}

// UpdateTransactionState stores status, validation snapshot, severity and resolution.
func (r *PgxTransactionRepository) UpdateTransactionState(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction", err)
	}
	query := `
		UPDATE transactions
		SET status = $2, validation = $3, exception_severity = $4, resolution = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Status,
		m.Validation,
		m.ExceptionSeverity,
		m.Resolution,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update transaction "+m.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}
