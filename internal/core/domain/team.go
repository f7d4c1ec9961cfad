package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team is a volunteer-run sports team with its own books.
type Team struct {
	TeamID        string `json:"teamID"`
	Name          string `json:"name"`
	AssociationID string `json:"associationID,omitempty"`
	CurrencyCode  string `json:"currencyCode"`
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// TeamRole defines the possible roles a user can have within a team.
type TeamRole string

const (
	RoleTreasurer TeamRole = "TREASURER"
	RoleManager   TeamRole = "MANAGER"
	RoleMember    TeamRole = "MEMBER"
	RoleReadOnly  TeamRole = "READONLY"
	RoleRemoved   TeamRole = "REMOVED"
)

// Rank orders roles by privilege. Unknown and removed roles rank below everything.
func (r TeamRole) Rank() int {
	switch r {
	case RoleTreasurer:
		return 3
	case RoleManager:
		return 2
	case RoleMember:
		return 1
	case RoleReadOnly:
		return 0
	}
	return -1
}

// Satisfies reports whether r grants at least the privileges of required.
func (r TeamRole) Satisfies(required TeamRole) bool {
	return r.Rank() >= 0 && r.Rank() >= required.Rank()
}

// TeamMember represents the membership of a user in a team.
type TeamMember struct {
	TeamID   string    `json:"teamID"`
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	Role     TeamRole  `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// TeamSettings holds per-team overrides of the association policy.
// A nil field means "use the default".
type TeamSettings struct {
	TeamID                          string           `json:"teamID"`
	RequiredApprovals               *int             `json:"requiredApprovals,omitempty"`
	MinIndependentReps              *int             `json:"minIndependentReps,omitempty"`
	DualApprovalThresholdCents      *int64           `json:"dualApprovalThresholdCents,omitempty"`
	ReceiptThreshold                *decimal.Decimal `json:"receiptThreshold,omitempty"`
	TransactionLimit                *decimal.Decimal `json:"transactionLimit,omitempty"`
	CategoryOverrunTolerancePercent *decimal.Decimal `json:"categoryOverrunTolerancePercent,omitempty"`
	CashLikeRequiresReview          *bool            `json:"cashLikeRequiresReview,omitempty"`
	ChequeImageThresholdCents       *int64           `json:"chequeImageThresholdCents,omitempty"`
}
