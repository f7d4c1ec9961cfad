package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// ReconciliationState is read with the bank transaction and spend intent rows locked.
type ReconciliationState struct {
	BankTransaction domain.PlaidBankTransaction
	Intent          domain.SpendIntent
	Approvals       []domain.SpendIntentApproval
	Cheque          *domain.ChequeMetadata
	// Ledger is the transaction already recorded for the intent, nil if none.
	Ledger *domain.Transaction
}

// ReconciliationPlan is written atomically once a match is confirmed.
type ReconciliationPlan struct {
	// Ledger is inserted when CreateLedger is true, otherwise its bank link is updated.
	Ledger       domain.Transaction
	CreateLedger bool
	// SettleIntent moves the intent to SETTLED.
	SettleIntent bool
	Exceptions   []domain.PolicyException
}

// ReconciliationPlanner decides the writes for a match. Returning an error aborts them.
type ReconciliationPlanner func(state ReconciliationState) (ReconciliationPlan, error)

// ReconciliationRepositoryFacade applies the writes of one reconciliation.
type ReconciliationRepositoryFacade interface {
	// ApplyReconciliation links the bank transaction to the intent, records or
	// links the ledger transaction, settles the intent and stores the exceptions
	// (stamped with the ledger transaction id) in one database transaction.
	ApplyReconciliation(ctx context.Context, bankTransactionID, spendIntentID string, plan ReconciliationPlanner) (*ReconciliationPlan, error)
}
