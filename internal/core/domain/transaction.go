package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// TransactionStatus is the validation-first lifecycle of a ledger entry.
type TransactionStatus string

const (
	TransactionImported  TransactionStatus = "IMPORTED"
	TransactionValidated TransactionStatus = "VALIDATED"
	TransactionException TransactionStatus = "EXCEPTION"
	TransactionResolved  TransactionStatus = "RESOLVED"

	// Legacy statuses kept for rows created before validation existed.
	TransactionDraft    TransactionStatus = "DRAFT"
	TransactionPending  TransactionStatus = "PENDING"
	TransactionApproved TransactionStatus = "APPROVED"
	TransactionRejected TransactionStatus = "REJECTED"
)

// ExceptionSeverity routes non-compliant transactions for escalation.
type ExceptionSeverity string

const (
	ExceptionSeverityLow      ExceptionSeverity = "LOW"
	ExceptionSeverityMedium   ExceptionSeverity = "MEDIUM"
	ExceptionSeverityHigh     ExceptionSeverity = "HIGH"
	ExceptionSeverityCritical ExceptionSeverity = "CRITICAL"
)

// ValidationResult is the snapshot stored on a transaction after a validation run.
// Violations is empty iff Compliant is true.
type ValidationResult struct {
	Compliant   bool        `json:"compliant"`
	Violations  []Violation `json:"violations"`
	Score       int         `json:"score"`
	ValidatedAt time.Time   `json:"validatedAt"`
}

// Resolution records how an exception was closed. It never erases the violations.
type Resolution struct {
	ResolvedAt time.Time `json:"resolvedAt"`
	ResolvedBy string    `json:"resolvedBy"`
	Note       string    `json:"note"`
}

// Transaction is the team's authoritative bookkeeping record.
type Transaction struct {
	TransactionID     string             `json:"transactionID"`
	TeamID            string             `json:"teamID"`
	Type              TransactionType    `json:"type"`
	Status            TransactionStatus  `json:"status"`
	Amount            decimal.Decimal    `json:"amount"`
	CurrencyCode      string             `json:"currencyCode"`
	Vendor            string             `json:"vendor"`
	Description       string             `json:"description"`
	CategoryID        *string            `json:"categoryID,omitempty"`
	SystemCategoryID  *string            `json:"systemCategoryID,omitempty"`
	BudgetID          *string            `json:"budgetID,omitempty"`
	ReceiptURL        *string            `json:"receiptURL,omitempty"`
	TransactionDate   time.Time          `json:"transactionDate"`
	Validation        *ValidationResult  `json:"validation,omitempty"`
	ExceptionSeverity *ExceptionSeverity `json:"exceptionSeverity,omitempty"`
	SpendIntentID     *string            `json:"spendIntentID,omitempty"`
	BankTransactionID *string            `json:"bankTransactionID,omitempty"`
	Resolution        *Resolution        `json:"resolution,omitempty"`
	AuditFields
}

// EffectiveCategoryID returns the user category, falling back to the system category.
func (t *Transaction) EffectiveCategoryID() *string {
	if t.CategoryID != nil && *t.CategoryID != "" {
		return t.CategoryID
	}
	if t.SystemCategoryID != nil && *t.SystemCategoryID != "" {
		return t.SystemCategoryID
	}
	return nil
}
