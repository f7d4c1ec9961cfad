package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/dto"
)

// teamService implements the TeamSvcFacade interface
type teamService struct {
	BaseService
	teamRepo portsrepo.TeamRepositoryFacade
	defaults domain.Policy
}

// NewTeamService creates the team authorizer and policy resolver. defaults is
// the association-wide policy that team settings override.
func NewTeamService(teamRepo portsrepo.TeamRepositoryFacade, defaults domain.Policy, opts ...Option) portssvc.TeamSvcFacade {
	s := &teamService{
		teamRepo: teamRepo,
		defaults: defaults,
	}
	s.apply(opts)
	return s
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// AuthorizeUserAction checks that the user belongs to the team with at least requiredRole.
func (s *teamService) AuthorizeUserAction(ctx context.Context, userID, teamID string, requiredRole domain.TeamRole) error {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("team %s: %w", teamID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load team for authorization", slog.String("team_id", teamID))
		return err
	}
	if !team.IsActive {
		return apperrors.Forbidden("this team is no longer active")
	}

	member, err := s.teamRepo.FindTeamMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User is not a member of team", slog.String("user_id", userID), slog.String("team_id", teamID))
			return apperrors.Forbidden("you are not a member of this team")
		}
		s.LogError(ctx, err, "Failed to load team membership", slog.String("user_id", userID), slog.String("team_id", teamID))
		return err
	}

	if !member.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "Team role too low for action",
			slog.String("user_id", userID),
			slog.String("team_id", teamID),
			slog.String("role", string(member.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.Forbidden(fmt.Sprintf("this action needs the %s role or higher on this team", strings.ToLower(string(requiredRole))))
	}
	return nil
}

// RequireSigningAuthority returns the user's active signing authority record.
func (s *teamService) RequireSigningAuthority(ctx context.Context, userID, teamID string) (*domain.TeamSigningAuthority, error) {
	if err := s.AuthorizeUserAction(ctx, userID, teamID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	authority, err := s.teamRepo.FindSigningAuthority(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Forbidden("you do not hold signing authority for this team")
		}
		s.LogError(ctx, err, "Failed to load signing authority", slog.String("user_id", userID), slog.String("team_id", teamID))
		return nil, err
	}
	if !authority.IsActive {
		return nil, apperrors.Forbidden("your signing authority for this team has been revoked")
	}
	return authority, nil
}

// EffectivePolicy merges the team's settings over the defaults.
func (s *teamService) EffectivePolicy(ctx context.Context, teamID string) (domain.Policy, error) {
	settings, err := s.teamRepo.FindTeamSettings(ctx, teamID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.defaults, nil
		}
		s.LogError(ctx, err, "Failed to load team settings", slog.String("team_id", teamID))
		return domain.Policy{}, err
	}
	return s.defaults.WithTeamSettings(settings), nil
}

// AppointSigningAuthority grants signing authority to a team member, or
// reactivates a revoked grant.
func (s *teamService) AppointSigningAuthority(ctx context.Context, teamID string, req dto.AppointSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error) {
	if err := s.AuthorizeUserAction(ctx, actorUserID, teamID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.FindTeamMember(ctx, teamID, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ValidationErrors{{Field: "userID", Message: "is not a member of this team"}}
		}
		return nil, err
	}

	now := s.Now()
	existing, err := s.teamRepo.FindSigningAuthority(ctx, teamID, req.UserID)
	switch {
	case err == nil && existing.IsActive:
		return nil, apperrors.Conflict("this member already holds signing authority")
	case err == nil:
		existing.IsActive = true
		existing.IsIndependentParentRep = req.IsIndependentParentRep
		existing.Title = req.Title
		existing.AppointedAt = now
		existing.AppointedBy = actorUserID
		existing.RevokedAt = nil
		if err := s.teamRepo.UpdateSigningAuthority(ctx, *existing); err != nil {
			s.LogError(ctx, err, "Failed to reactivate signing authority", slog.String("team_id", teamID), slog.String("user_id", req.UserID))
			return nil, err
		}
		s.LogInfo(ctx, "Signing authority reactivated", slog.String("team_id", teamID), slog.String("user_id", req.UserID))
		return existing, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	authority := domain.TeamSigningAuthority{
		TeamID:                 teamID,
		UserID:                 req.UserID,
		IsActive:               true,
		IsIndependentParentRep: req.IsIndependentParentRep,
		Title:                  req.Title,
		AppointedAt:            now,
		AppointedBy:            actorUserID,
	}
	if err := s.teamRepo.SaveSigningAuthority(ctx, authority); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.Conflict("this member already holds signing authority")
		}
		s.LogError(ctx, err, "Failed to save signing authority", slog.String("team_id", teamID), slog.String("user_id", req.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Signing authority appointed",
		slog.String("team_id", teamID),
		slog.String("user_id", req.UserID),
		slog.Bool("independent_parent_rep", req.IsIndependentParentRep))
	return &authority, nil
}

// UpdateSigningAuthority changes the live authority record. Approvals already
// given keep the flags they were recorded with.
func (s *teamService) UpdateSigningAuthority(ctx context.Context, teamID, targetUserID string, req dto.UpdateSigningAuthorityRequest, actorUserID string) (*domain.TeamSigningAuthority, error) {
	if err := s.AuthorizeUserAction(ctx, actorUserID, teamID, domain.RoleTreasurer); err != nil {
		return nil, err
	}

	authority, err := s.teamRepo.FindSigningAuthority(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}

	if req.IsIndependentParentRep != nil {
		authority.IsIndependentParentRep = *req.IsIndependentParentRep
	}
	if req.Title != nil {
		authority.Title = *req.Title
	}
	if req.IsActive != nil && *req.IsActive != authority.IsActive {
		authority.IsActive = *req.IsActive
		if authority.IsActive {
			authority.RevokedAt = nil
		} else {
			now := s.Now()
			authority.RevokedAt = &now
		}
	}

	if err := s.teamRepo.UpdateSigningAuthority(ctx, *authority); err != nil {
		s.LogError(ctx, err, "Failed to update signing authority", slog.String("team_id", teamID), slog.String("user_id", targetUserID))
		return nil, err
	}
	s.LogInfo(ctx, "Signing authority updated",
		slog.String("team_id", teamID),
		slog.String("user_id", targetUserID),
		slog.Bool("active", authority.IsActive))
	return authority, nil
}
