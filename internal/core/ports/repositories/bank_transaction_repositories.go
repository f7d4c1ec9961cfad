package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// BankTransactionReader defines read operations for bank-feed entries.
type BankTransactionReader interface {
	// FindBankTransactionByExternalID retrieves a bank transaction by the feed's id.
	FindBankTransactionByExternalID(ctx context.Context, externalTransactionID string) (*domain.PlaidBankTransaction, error)
}

// BankTransactionWriter defines write operations for bank-feed entries.
type BankTransactionWriter interface {
	// UpsertBankTransaction inserts the entry or updates it by external id when its
	// payload digest changed. Returns apperrors.ErrConflict if the external id
	// belongs to another team.
	UpsertBankTransaction(ctx context.Context, tx domain.PlaidBankTransaction) (domain.UpsertOutcome, error)
}

// BankTransactionRepositoryFacade combines all bank transaction repository interfaces.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
