package repositories

import (
	"context"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// TeamReader defines read operations for teams and their members.
type TeamReader interface {
	// FindTeamByID retrieves a team by its ID.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// FindTeamMember retrieves the membership of a user in a team.
	// Returns apperrors.ErrNotFound if the user is not a member.
	FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)

	// FindTeamSettings retrieves the per-team policy overrides.
	// Returns apperrors.ErrNotFound if the team has no overrides.
	FindTeamSettings(ctx context.Context, teamID string) (*domain.TeamSettings, error)
}

// SigningAuthorityManager defines operations on the signing-authority table.
type SigningAuthorityManager interface {
	// FindSigningAuthority retrieves the signing authority record of a user in a team, active or not.
	FindSigningAuthority(ctx context.Context, teamID, userID string) (*domain.TeamSigningAuthority, error)

	// SaveSigningAuthority inserts a new signing authority. Returns apperrors.ErrDuplicate if one exists.
	SaveSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error

	// UpdateSigningAuthority updates the active and independent-rep flags of an existing record.
	UpdateSigningAuthority(ctx context.Context, authority domain.TeamSigningAuthority) error
}

// BudgetReader defines lookups the rules engines need from budgets.
type BudgetReader interface {
	// FindBudgetLineItem retrieves a budget line item together with its budget's status.
	FindBudgetLineItem(ctx context.Context, teamID, lineItemID string) (*domain.BudgetLineItem, error)

	// FindBudgetSnapshot retrieves a budget with per-category allocated and spent amounts.
	FindBudgetSnapshot(ctx context.Context, teamID, budgetID string) (*domain.BudgetSnapshot, error)

	// FindCurrentBudgetSnapshot retrieves the team's most recent approved budget.
	FindCurrentBudgetSnapshot(ctx context.Context, teamID string) (*domain.BudgetSnapshot, error)
}

// VendorReader defines vendor lookups.
type VendorReader interface {
	// FindVendorByID retrieves a vendor owned by the team.
	FindVendorByID(ctx context.Context, teamID, vendorID string) (*domain.Vendor, error)
}

// TeamRepositoryFacade combines all team-related repository interfaces.
type TeamRepositoryFacade interface {
	TeamReader
	SigningAuthorityManager
	BudgetReader
	VendorReader
}
