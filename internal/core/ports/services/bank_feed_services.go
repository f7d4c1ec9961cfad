package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// BankFeedSvcFacade ingests bank-feed batches.
type BankFeedSvcFacade interface {
	// IngestBankTransactions upserts every entry by external id. A bad row is
	// reported in the result and never aborts the batch.
	IngestBankTransactions(ctx context.Context, teamID string, entries []domain.BankFeedEntry, userID string) (*domain.IngestionResult, error)
}
