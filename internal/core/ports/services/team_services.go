package services

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// TeamAuthorizerSvc resolves what a caller may do within a team.
type TeamAuthorizerSvc interface {
	// AuthorizeUserAction checks that a user is a member with at least the required role.
	// Returns apperrors.ErrNotFound if the user is not a member, apperrors.ErrForbidden if the role is too low.
	AuthorizeUserAction(ctx context.Context, userID, teamID string, requiredRole domain.TeamRole) error

	// RequireSigningAuthority returns the caller's active signing authority or apperrors.ErrForbidden.
	RequireSigningAuthority(ctx context.Context, userID, teamID string) (*domain.TeamSigningAuthority, error)
}

// TeamPolicySvc resolves the policy that applies to a team.
type TeamPolicySvc interface {
	// EffectivePolicy merges the team's overrides over the association defaults.
	EffectivePolicy(ctx context.Context, teamID string) (domain.Policy, error)
}

// SigningAuthoritySvc maintains the signing-authority table.
type SigningAuthoritySvc interface {
	// AppointSigningAuthority grants signing authority to a team member. Treasurer only.
	AppointSigningAuthority(ctx context.Context, teamID string, req dto.AppointSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error)

	// UpdateSigningAuthority changes a signer's flags. Existing approvals keep their snapshot.
	UpdateSigningAuthority(ctx context.Context, teamID, targetUserID string, req dto.UpdateSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error)
}

// TeamSvcFacade combines all team-related service interfaces
type TeamSvcFacade interface {
	TeamAuthorizerSvc
	TeamPolicySvc
	SigningAuthoritySvc
}
