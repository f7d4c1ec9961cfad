package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Team is a row of the teams table.
type Team struct {
	TeamID        string  `db:"team_id"`
	Name          string  `db:"name"`
	AssociationID *string `db:"association_id"`
	CurrencyCode  string  `db:"currency_code"`
	IsActive      bool    `db:"is_active"`
	AuditFields
}

// TeamMember is a team_members row joined with the user's display name.
type TeamMember struct {
	TeamID   string    `db:"team_id"`
	UserID   string    `db:"user_id"`
	UserName string    `db:"user_name"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

// TeamSettings is a row of team_settings. NULL columns fall back to the association policy.
type TeamSettings struct {
	TeamID                          string              `db:"team_id"`
	RequiredApprovals               *int32              `db:"required_approvals"`
	MinIndependentReps              *int32              `db:"min_independent_reps"`
	DualApprovalThresholdCents      *int64              `db:"dual_approval_threshold_cents"`
	ReceiptThreshold                decimal.NullDecimal `db:"receipt_threshold"`
	TransactionLimit                decimal.NullDecimal `db:"transaction_limit"`
	CategoryOverrunTolerancePercent decimal.NullDecimal `db:"category_overrun_tolerance_percent"`
	CashLikeRequiresReview          *bool               `db:"cash_like_requires_review"`
	ChequeImageThresholdCents       *int64              `db:"cheque_image_threshold_cents"`
}

// SigningAuthority is a row of team_signing_authorities.
type SigningAuthority struct {
	TeamID                 string     `db:"team_id"`
	UserID                 string     `db:"user_id"`
	IsActive               bool       `db:"is_active"`
	IsIndependentParentRep bool       `db:"is_independent_parent_rep"`
	Title                  *string    `db:"title"`
	AppointedAt            time.Time  `db:"appointed_at"`
	AppointedBy            string     `db:"appointed_by"`
	RevokedAt              *time.Time `db:"revoked_at"`
}

// Vendor is a row of vendors.
type Vendor struct {
	VendorID      string `db:"vendor_id"`
	TeamID        string `db:"team_id"`
	Name          string `db:"name"`
	IsWhitelisted bool   `db:"is_whitelisted"`
}

// BudgetLineItem is a budget_line_items row joined with its budget's status.
type BudgetLineItem struct {
	LineItemID   string `db:"line_item_id"`
	BudgetID     string `db:"budget_id"`
	TeamID       string `db:"team_id"`
	CategoryID   string `db:"category_id"`
	BudgetStatus string `db:"budget_status"`
}

// BudgetAllocation is one category's allocated amount and the spend already booked against it.
type BudgetAllocation struct {
	BudgetID     string          `db:"budget_id"`
	BudgetStatus string          `db:"budget_status"`
	CategoryID   string          `db:"category_id"`
	Allocated    decimal.Decimal `db:"allocated"`
	CurrentSpent decimal.Decimal `db:"current_spent"`
}
