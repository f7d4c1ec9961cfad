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

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for bank-feed entries.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const bankTransactionColumns = `
	bank_transaction_id, team_id, external_transaction_id, amount_cents, currency_code,
	posted_date, authorized_date, merchant_name, raw_name, payment_channel, pending,
	spend_intent_id, raw_payload, payload_digest, created_at, updated_at`

// FindBankTransactionByExternalID retrieves a bank transaction by the feed's id.
func (r *PgxBankTransactionRepository) FindBankTransactionByExternalID(ctx context.Context, externalTransactionID string) (*domain.PlaidBankTransaction, error) {
	return findBankTransaction(ctx, r.Pool, "external_transaction_id", externalTransactionID, false)
}

// findBankTransaction loads one row by a unique column, locking it when forUpdate is set.
func findBankTransaction(ctx context.Context, q querier, column, value string, forUpdate bool) (*domain.PlaidBankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM plaid_bank_transactions WHERE ` + column + ` = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, value)
	if err != nil {
		return nil, mapError(err, "find bank transaction "+value)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BankTransaction])
	if err != nil {
		return nil, mapError(err, "find bank transaction "+value)
	}
	tx := mapping.ToDomainBankTransaction(m)
	return &tx, nil
}

// UpsertBankTransaction inserts the entry, or updates the stored row when the
// payload digest changed. The reconciliation link and creation time are never
// overwritten by a resync. A reconciled row keeps its amount, currency and
// posting date; a resync that changes them is reported as ErrInvalidState.
func (r *PgxBankTransactionRepository) UpsertBankTransaction(ctx context.Context, tx domain.PlaidBankTransaction) (domain.UpsertOutcome, error) {
	m := mapping.ToModelBankTransaction(tx)
	query := `
		INSERT INTO plaid_bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL, $12, $13, $14, $15)
		ON CONFLICT (external_transaction_id) DO UPDATE SET
			amount_cents = EXCLUDED.amount_cents,
			currency_code = EXCLUDED.currency_code,
			posted_date = EXCLUDED.posted_date,
			authorized_date = EXCLUDED.authorized_date,
			merchant_name = EXCLUDED.merchant_name,
			raw_name = EXCLUDED.raw_name,
			payment_channel = EXCLUDED.payment_channel,
			pending = EXCLUDED.pending,
			raw_payload = EXCLUDED.raw_payload,
			payload_digest = EXCLUDED.payload_digest,
			updated_at = EXCLUDED.updated_at
		WHERE plaid_bank_transactions.team_id = EXCLUDED.team_id
		  AND plaid_bank_transactions.payload_digest IS DISTINCT FROM EXCLUDED.payload_digest
		  AND (plaid_bank_transactions.spend_intent_id IS NULL
		       OR (plaid_bank_transactions.amount_cents = EXCLUDED.amount_cents
		           AND plaid_bank_transactions.currency_code = EXCLUDED.currency_code
		           AND plaid_bank_transactions.posted_date = EXCLUDED.posted_date))
		RETURNING (xmax = 0) AS inserted;
	`
	var inserted bool
	err := r.Pool.QueryRow(ctx, query,
		m.BankTransactionID,
		m.TeamID,
		m.ExternalTransactionID,
		m.AmountCents,
		m.CurrencyCode,
		m.PostedDate,
		m.AuthorizedDate,
		m.MerchantName,
		m.RawName,
		m.PaymentChannel,
		m.Pending,
		m.RawPayload,
		m.PayloadDigest,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&inserted)
	if err == nil {
		if inserted {
			return domain.UpsertInserted, nil
		}
		return domain.UpsertUpdated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", mapError(err, "upsert bank transaction "+m.ExternalTransactionID)
	}

	// The conditional update skipped the row: nothing changed, the external id
	// belongs to another team, or a reconciled fact was about to move.
	var ownerTeamID string
	var changed, linked bool
	if err := r.Pool.QueryRow(ctx,
		`SELECT team_id, payload_digest IS DISTINCT FROM $2, spend_intent_id IS NOT NULL
		 FROM plaid_bank_transactions WHERE external_transaction_id = $1;`,
		m.ExternalTransactionID, m.PayloadDigest,
	).Scan(&ownerTeamID, &changed, &linked); err != nil {
		return "", mapError(err, "find owner of bank transaction "+m.ExternalTransactionID)
	}
	switch {
	case ownerTeamID != m.TeamID:
		return "", fmt.Errorf("bank transaction %s: %w", m.ExternalTransactionID, apperrors.ErrConflict)
	case changed && linked:
		return "", fmt.Errorf("reconciled bank transaction %s: %w", m.ExternalTransactionID, apperrors.ErrInvalidState)
	}
	return domain.UpsertUnchanged, nil
}
