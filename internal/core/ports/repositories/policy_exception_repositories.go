package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// PolicyExceptionFilter narrows a policy exception listing.
type PolicyExceptionFilter struct {
	Type     *domain.PolicyExceptionType
	Severity *domain.PolicyExceptionSeverity
}

// PolicyExceptionRepositoryFacade stores immutable policy exceptions. There is no update.
type PolicyExceptionRepositoryFacade interface {
	// SavePolicyException persists an exception. It rejects exceptions that
	// reference neither a transaction nor a bank transaction.
	SavePolicyException(ctx context.Context, exception domain.PolicyException) error

	// ListPolicyExceptionsByTeam retrieves a page of a team's exceptions, newest first.
	ListPolicyExceptionsByTeam(ctx context.Context, teamID string, filter PolicyExceptionFilter, limit int, nextToken *string) ([]domain.PolicyException, *string, error)
}
