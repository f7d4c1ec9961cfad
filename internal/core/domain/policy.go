package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy is the association-wide compliance configuration, optionally
// overridden per team. Every rules engine takes it as an explicit argument.
type Policy struct {
	RequiredApprovals          int
	MinIndependentReps         int
	DualApprovalThresholdCents int64

	// ReceiptThreshold and TransactionLimit are in major currency units.
	// A zero TransactionLimit disables the per-transaction ceiling.
	ReceiptThreshold                decimal.Decimal
	TransactionLimit                decimal.Decimal
	CategoryOverrunTolerancePercent decimal.Decimal
	CashLikeRequiresReview          bool

	// HighSeverityAmount escalates a single ERROR to HIGH exception severity.
	HighSeverityAmount decimal.Decimal

	ChequeImageThresholdCents int64

	MatchWindow        time.Duration
	MaxMatchCandidates int
}

// DefaultPolicy returns the association defaults.
func DefaultPolicy() Policy {
	return Policy{
		RequiredApprovals:               2,
		MinIndependentReps:              1,
		DualApprovalThresholdCents:      20000,
		ReceiptThreshold:                decimal.NewFromInt(100),
		TransactionLimit:                decimal.NewFromInt(5000),
		CategoryOverrunTolerancePercent: decimal.Zero,
		CashLikeRequiresReview:          true,
		HighSeverityAmount:              decimal.NewFromInt(500),
		ChequeImageThresholdCents:       50000,
		MatchWindow:                     14 * 24 * time.Hour,
		MaxMatchCandidates:              5,
	}
}

// HasTransactionLimit reports whether a per-transaction ceiling is configured.
func (p Policy) HasTransactionLimit() bool {
	return p.TransactionLimit.IsPositive()
}

// WithTeamSettings returns a copy of p with the team's overrides applied.
func (p Policy) WithTeamSettings(s *TeamSettings) Policy {
	if s == nil {
		return p
	}
	if s.RequiredApprovals != nil {
		p.RequiredApprovals = *s.RequiredApprovals
	}
	if s.MinIndependentReps != nil {
		p.MinIndependentReps = *s.MinIndependentReps
	}
	if s.DualApprovalThresholdCents != nil {
		p.DualApprovalThresholdCents = *s.DualApprovalThresholdCents
	}
	if s.ReceiptThreshold != nil {
		p.ReceiptThreshold = *s.ReceiptThreshold
	}
	if s.TransactionLimit != nil {
		p.TransactionLimit = *s.TransactionLimit
	}
	if s.CategoryOverrunTolerancePercent != nil {
		p.CategoryOverrunTolerancePercent = *s.CategoryOverrunTolerancePercent
	}
	if s.CashLikeRequiresReview != nil {
		p.CashLikeRequiresReview = *s.CashLikeRequiresReview
	}
	if s.ChequeImageThresholdCents != nil {
		p.ChequeImageThresholdCents = *s.ChequeImageThresholdCents
	}
	return p
}
