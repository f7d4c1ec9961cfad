// Package authorization decides whether a proposed spend can rely on the
// team's standing budget authorization or needs manual signer approval.
package authorization

import (
	"strings"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// Failure reasons, in the order they are checked.
const (
	ReasonNoBudgetLine      = "no budget line item"
	ReasonBudgetNotApproved = "budget not approved"
	ReasonVendorNotKnown    = "vendor not known/whitelisted"
	ReasonTreasurerIsPayee  = "treasurer is the payee"

	reasonStanding = "approved budget line with a whitelisted vendor"
)

// Input is a validated spend proposal. The three flags are resolved by the caller.
type Input struct {
	AmountCents      int64
	PaymentMethod    domain.PaymentMethod
	BudgetLineItemID *string
	BudgetApproved   bool
	VendorIsKnown    bool
	TreasurerIsPayee bool
}

// HasBudgetLine treats an empty budget line id the same as a missing one.
func (in Input) HasBudgetLine() bool {
	return in.BudgetLineItemID != nil && strings.TrimSpace(*in.BudgetLineItemID) != ""
}

// Conditions records each standing-authorization condition individually.
type Conditions struct {
	HasBudgetLine   bool `json:"hasBudgetLine"`
	BudgetApproved  bool `json:"budgetApproved"`
	VendorIsKnown   bool `json:"vendorIsKnown"`
	NoPayeeConflict bool `json:"noPayeeConflict"`
}

// Decision is the outcome of Decide.
type Decision struct {
	RequiresManualApproval bool                     `json:"requiresManualApproval"`
	AuthorizationType      domain.AuthorizationType `json:"authorizationType"`
	RequiredApprovalsCount int                      `json:"requiredApprovalsCount"`
	MinIndependentRepCount int                      `json:"minIndependentParentRepCount"`
	Reason                 string                   `json:"reason"`
	Failures               []string                 `json:"failures,omitempty"`
	Conditions             Conditions               `json:"conditions"`
}

// Decide grants standing authorization iff the budget line is present, its
// budget is approved, the vendor is whitelisted and the treasurer is not the
// payee. The amount never influences the outcome.
func Decide(in Input, policy domain.Policy) Decision {
	cond := Conditions{
		HasBudgetLine:   in.HasBudgetLine(),
		BudgetApproved:  in.BudgetApproved,
		VendorIsKnown:   in.VendorIsKnown,
		NoPayeeConflict: !in.TreasurerIsPayee,
	}

	var failures []string
	if !cond.HasBudgetLine {
		failures = append(failures, ReasonNoBudgetLine)
	}
	if !cond.BudgetApproved {
		failures = append(failures, ReasonBudgetNotApproved)
	}
	if !cond.VendorIsKnown {
		failures = append(failures, ReasonVendorNotKnown)
	}
	if !cond.NoPayeeConflict {
		failures = append(failures, ReasonTreasurerIsPayee)
	}

	if len(failures) == 0 {
		return Decision{
			AuthorizationType: domain.StandingBudgetAuthorization,
			Reason:            reasonStanding,
			Conditions:        cond,
		}
	}

	return Decision{
		RequiresManualApproval: true,
		AuthorizationType:      domain.ManualSignerApproval,
		RequiredApprovalsCount: policy.RequiredApprovals,
		MinIndependentRepCount: policy.MinIndependentReps,
		Reason:                 strings.Join(failures, "; "),
		Failures:               failures,
		Conditions:             cond,
	}
}

// DualApprovalAdvisory reports whether the amount reaches the dual-approval
// threshold. It is informational and does not change the decision.
func DualApprovalAdvisory(amountCents int64, policy domain.Policy) bool {
	return policy.DualApprovalThresholdCents > 0 && amountCents >= policy.DualApprovalThresholdCents
}
