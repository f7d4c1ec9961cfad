package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// SpendIntentReaderSvc defines read operations for spend intents.
type SpendIntentReaderSvc interface {
	GetSpendIntent(ctx context.Context, teamID, spendIntentID, userID string) (*domain.SpendIntent, error)
	ListSpendIntents(ctx context.Context, teamID, userID string, params dto.ListSpendIntentsParams) ([]domain.SpendIntent, *string, error)
}

// SpendIntentWriterSvc defines write operations for spend intents.
type SpendIntentWriterSvc interface {
	// CreateSpendIntent evaluates the authorization rules and persists the intent
	// as AUTHORIZED (standing) or AUTHORIZATION_PENDING (manual).
	CreateSpendIntent(ctx context.Context, teamID string, req dto.CreateSpendIntentRequest, userID string) (*dto.SpendIntentCreation, error)

	// RecordChequeMetadata stores cheque evidence for a CHEQUE spend intent.
	RecordChequeMetadata(ctx context.Context, teamID, spendIntentID string, req dto.ChequeMetadataRequest, userID string) (*domain.ChequeMetadata, error)
}

// SpendIntentSvcFacade combines all spend intent service interfaces
type SpendIntentSvcFacade interface {
	SpendIntentReaderSvc
	SpendIntentWriterSvc
}
