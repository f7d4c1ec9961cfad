package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// ReconciliationSvcFacade links bank transactions to spend intents.
type ReconciliationSvcFacade interface {
	// Reconcile matches one bank transaction. Finding no match is a successful outcome.
	Reconcile(ctx context.Context, teamID, externalTransactionID, userID string) (*domain.ReconciliationResult, error)

	// ListPolicyExceptions returns a page of the team's recorded exceptions.
	ListPolicyExceptions(ctx context.Context, teamID, userID string, params dto.ListPolicyExceptionsParams) ([]domain.PolicyException, *string, error)
}
