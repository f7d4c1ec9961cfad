package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for the writes of a reconciliation.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

// ApplyReconciliation locks the bank transaction, then the intent, reads the
// rest of the state and applies the plan in the same transaction. Locks are
// always taken in that order.
func (r *PgxReconciliationRepository) ApplyReconciliation(ctx context.Context, bankTransactionID, spendIntentID string, plan portsrepo.ReconciliationPlanner) (*portsrepo.ReconciliationPlan, error) {
	var result portsrepo.ReconciliationPlan
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		state, err := r.lockState(ctx, tx, bankTransactionID, spendIntentID)
		if err != nil {
			return err
		}
		result, err = plan(*state)
		if err != nil {
			return err
		}

		if result.CreateLedger {
			if err := insertTransaction(ctx, tx, result.Ledger); err != nil {
				return err
			}
		} else {
			link := `
				UPDATE transactions
				SET spend_intent_id = $2, bank_transaction_id = $3, last_updated_at = $4, last_updated_by = $5
				WHERE transaction_id = $1;
			`
			if _, err := tx.Exec(ctx, link,
				result.Ledger.TransactionID,
				spendIntentID,
				bankTransactionID,
				result.Ledger.LastUpdatedAt,
				result.Ledger.LastUpdatedBy,
			); err != nil {
				return mapError(err, "link transaction "+result.Ledger.TransactionID)
			}
		}

		if _, err := tx.Exec(ctx,
			`UPDATE plaid_bank_transactions SET spend_intent_id = $2 WHERE bank_transaction_id = $1;`,
			bankTransactionID, spendIntentID,
		); err != nil {
			return mapError(err, "link bank transaction "+bankTransactionID)
		}

		if result.SettleIntent {
			settle := `
				UPDATE spend_intents
				SET status = 'SETTLED', last_updated_at = $2, last_updated_by = $3
				WHERE spend_intent_id = $1 AND status <> 'SETTLED';
			`
			if _, err := tx.Exec(ctx, settle, spendIntentID, result.Ledger.LastUpdatedAt, result.Ledger.LastUpdatedBy); err != nil {
				return mapError(err, "settle spend intent "+spendIntentID)
			}
		}

		for _, e := range result.Exceptions {
			if err := insertPolicyException(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *PgxReconciliationRepository) lockState(ctx context.Context, tx pgx.Tx, bankTransactionID, spendIntentID string) (*portsrepo.ReconciliationState, error) {
	bankTx, err := findBankTransaction(ctx, tx, "bank_transaction_id", bankTransactionID, true)
	if err != nil {
		return nil, err
	}
	intent, err := findSpendIntent(ctx, tx, spendIntentID, true)
	if err != nil {
		return nil, err
	}
	if intent.TeamID != bankTx.TeamID {
		return nil, fmt.Errorf("spend intent %s: %w", spendIntentID, apperrors.ErrNotFound)
	}
	approvals, err := listApprovals(ctx, tx, spendIntentID)
	if err != nil {
		return nil, err
	}
	cheque, err := findChequeIfAny(ctx, tx, spendIntentID)
	if err != nil {
		return nil, err
	}
	ledger, err := findTransaction(ctx, tx, `spend_intent_id = $1`, spendIntentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return &portsrepo.ReconciliationState{
		BankTransaction: *bankTx,
		Intent:          *intent,
		Approvals:       approvals,
		Cheque:          cheque,
		Ledger:          ledger,
	}, nil
}
