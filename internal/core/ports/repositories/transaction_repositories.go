package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// TransactionFilter narrows a ledger listing.
type TransactionFilter struct {
	Status *domain.TransactionStatus
}

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a ledger transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByTeam retrieves a page of a team's ledger, newest transaction date first.
	ListTransactionsByTeam(ctx context.Context, teamID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// SaveTransaction persists a new ledger transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionState stores status, validation snapshot, severity and resolution.
	UpdateTransactionState(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
