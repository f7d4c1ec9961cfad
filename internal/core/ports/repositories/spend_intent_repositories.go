package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// SpendIntentFilter narrows a spend intent listing.
type SpendIntentFilter struct {
	Status *domain.SpendIntentStatus
}

// SpendIntentReader defines read operations for spend intents.
type SpendIntentReader interface {
	// FindSpendIntentByID retrieves a spend intent by its ID.
	FindSpendIntentByID(ctx context.Context, spendIntentID string) (*domain.SpendIntent, error)

	// ListSpendIntentsByTeam retrieves a page of a team's spend intents, newest first.
	ListSpendIntentsByTeam(ctx context.Context, teamID string, filter SpendIntentFilter, limit int, nextToken *string) ([]domain.SpendIntent, *string, error)

	// ListMatchCandidates retrieves the team's matchable spend intents for an amount created in [from, to].
	ListMatchCandidates(ctx context.Context, teamID string, amountCents int64, from, to time.Time) ([]domain.SpendIntent, error)

	// FindChequeMetadata retrieves the cheque evidence of a spend intent.
	// Returns apperrors.ErrNotFound if none was recorded.
	FindChequeMetadata(ctx context.Context, spendIntentID string) (*domain.ChequeMetadata, error)
}

// SpendIntentWriter defines write operations for spend intents.
type SpendIntentWriter interface {
	// SaveSpendIntent persists a new spend intent and, when given, its cheque metadata in one transaction.
	SaveSpendIntent(ctx context.Context, intent domain.SpendIntent, cheque *domain.ChequeMetadata) error

	// UpsertChequeMetadata inserts or replaces the cheque evidence of a spend intent.
	UpsertChequeMetadata(ctx context.Context, cheque domain.ChequeMetadata) error
}

// SpendIntentRepositoryFacade combines all spend intent repository interfaces.
type SpendIntentRepositoryFacade interface {
	SpendIntentReader
	SpendIntentWriter
}
