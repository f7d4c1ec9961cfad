package domain

import "time"

// PaymentMethod is how money leaves the team account.
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodCheque    PaymentMethod = "CHEQUE"
	PaymentMethodETransfer PaymentMethod = "E_TRANSFER"
)

// IsValid reports whether m is a recognized payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCheque, PaymentMethodETransfer:
		return true
	}
	return false
}

// AuthorizationType records how a spend intent was authorized.
type AuthorizationType string

const (
	StandingBudgetAuthorization AuthorizationType = "STANDING_BUDGET_AUTHORIZATION"
	ManualSignerApproval        AuthorizationType = "MANUAL_SIGNER_APPROVAL"
)

// SpendIntentStatus is the lifecycle state of a spend intent.
type SpendIntentStatus string

const (
	SpendIntentAuthorizationPending SpendIntentStatus = "AUTHORIZATION_PENDING"
	SpendIntentAuthorized           SpendIntentStatus = "AUTHORIZED"
	SpendIntentOutstanding          SpendIntentStatus = "OUTSTANDING"
	SpendIntentSettled              SpendIntentStatus = "SETTLED"
)

func (s SpendIntentStatus) rank() int {
	switch s {
	case SpendIntentAuthorizationPending:
		return 0
	case SpendIntentAuthorized:
		return 1
	case SpendIntentOutstanding:
		return 2
	case SpendIntentSettled:
		return 3
	}
	return -1
}

// CanAdvanceTo reports whether moving from s to next is a forward progression.
// Statuses never regress and never repeat.
func (s SpendIntentStatus) CanAdvanceTo(next SpendIntentStatus) bool {
	if s.rank() < 0 || next.rank() < 0 {
		return false
	}
	return next.rank() > s.rank()
}

// IsMatchable reports whether a spend intent in this status can be linked to a bank transaction.
func (s SpendIntentStatus) IsMatchable() bool {
	switch s {
	case SpendIntentAuthorized, SpendIntentOutstanding, SpendIntentAuthorizationPending:
		return true
	}
	return false
}

// SpendIntent is a proposed expenditure before money moves.
// AuthorizationType and RequiresManualApproval are decided once at creation.
type SpendIntent struct {
	SpendIntentID          string            `json:"spendIntentID"`
	TeamID                 string            `json:"teamID"`
	AmountCents            int64             `json:"amountCents"`
	CurrencyCode           string            `json:"currencyCode"`
	PaymentMethod          PaymentMethod     `json:"paymentMethod"`
	VendorID               *string           `json:"vendorID,omitempty"`
	VendorName             string            `json:"vendorName,omitempty"`
	PayeeUserID            *string           `json:"payeeUserID,omitempty"`
	BudgetLineItemID       *string           `json:"budgetLineItemID,omitempty"`
	Description            string            `json:"description,omitempty"`
	AuthorizationType      AuthorizationType `json:"authorizationType"`
	RequiresManualApproval bool              `json:"requiresManualApproval"`
	Status                 SpendIntentStatus `json:"status"`
	AuthorizedAt           *time.Time        `json:"authorizedAt,omitempty"`
	AuditFields
}

// IsPayee reports whether userID is the designated payee. With no payee nobody is.
func (s *SpendIntent) IsPayee(userID string) bool {
	return s.PayeeUserID != nil && *s.PayeeUserID == userID
}

// DisplayVendor returns the best available vendor label.
func (s *SpendIntent) DisplayVendor() string {
	if s.VendorName != "" {
		return s.VendorName
	}
	if s.VendorID != nil {
		return *s.VendorID
	}
	return ""
}
