package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger transactions.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, teamID, transactionID, userID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, teamID, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for ledger transactions.
type TransactionWriterSvc interface {
	// CreateTransaction records a manual ledger entry and validates it.
	CreateTransaction(ctx context.Context, teamID string, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)

	// RevalidateTransaction reruns validation. A RESOLVED transaction is returned unchanged.
	RevalidateTransaction(ctx context.Context, teamID, transactionID, userID string) (*domain.Transaction, error)

	// ResolveTransaction closes an exception while keeping its violation history.
	ResolveTransaction(ctx context.Context, teamID, transactionID string, req dto.ResolveTransactionRequest, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all ledger service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
