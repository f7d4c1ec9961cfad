package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Severity grades a single rule violation.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Penalty is the number of compliance points a violation of this severity costs.
func (s Severity) Penalty() int {
	switch s {
	case SeverityWarning:
		return 5
	case SeverityError:
		return 15
	case SeverityCritical:
		return 30
	}
	return 0
}

// BlocksCompliance reports whether a violation of this severity makes a transaction non-compliant.
func (s Severity) BlocksCompliance() bool {
	return s == SeverityError || s == SeverityCritical
}

// ViolationCode identifies the rule that produced a violation.
type ViolationCode string

const (
	CodeCategorized      ViolationCode = "CATEGORIZED"
	CodeApprovedCategory ViolationCode = "APPROVED_CATEGORY"
	CodeCategoryOverrun  ViolationCode = "CATEGORY_OVERRUN"
	CodeRequiredReceipt  ViolationCode = "REQUIRED_RECEIPT"
	CodeTransactionLimit ViolationCode = "TRANSACTION_LIMIT"
	CodeCashLike         ViolationCode = "CASH_LIKE"
)

// ViolationMetadata is the typed detail attached to a violation. Each code has
// exactly one metadata shape.
type ViolationMetadata interface {
	ViolationCode() ViolationCode
}

type CategorizedMetadata struct{}

type ApprovedCategoryMetadata struct {
	BudgetID   string `json:"budgetID"`
	CategoryID string `json:"categoryID"`
}

type CategoryOverrunMetadata struct {
	CategoryID       string          `json:"categoryID"`
	Allocated        decimal.Decimal `json:"allocated"`
	CurrentSpent     decimal.Decimal `json:"currentSpent"`
	Amount           decimal.Decimal `json:"amount"`
	Overage          decimal.Decimal `json:"overage"`
	OverrunPercent   decimal.Decimal `json:"overrunPercent"`
	TolerancePercent decimal.Decimal `json:"tolerancePercent"`
}

type RequiredReceiptMetadata struct {
	Amount    decimal.Decimal `json:"amount"`
	Threshold decimal.Decimal `json:"threshold"`
}

type TransactionLimitMetadata struct {
	Amount decimal.Decimal `json:"amount"`
	Limit  decimal.Decimal `json:"limit"`
}

type CashLikeMetadata struct {
	MatchedTerm  string          `json:"matchedTerm"`
	Amount       decimal.Decimal `json:"amount"`
	Limit        decimal.Decimal `json:"limit"`
	ExceedsLimit bool            `json:"exceedsLimit"`
}

func (CategorizedMetadata) ViolationCode() ViolationCode      { return CodeCategorized }
func (ApprovedCategoryMetadata) ViolationCode() ViolationCode { return CodeApprovedCategory }
func (CategoryOverrunMetadata) ViolationCode() ViolationCode  { return CodeCategoryOverrun }
func (RequiredReceiptMetadata) ViolationCode() ViolationCode  { return CodeRequiredReceipt }
func (TransactionLimitMetadata) ViolationCode() ViolationCode { return CodeTransactionLimit }
func (CashLikeMetadata) ViolationCode() ViolationCode         { return CodeCashLike }

// Violation is one failed compliance rule.
type Violation struct {
	Code     ViolationCode     `json:"code"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message"`
	Metadata ViolationMetadata `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes the metadata into the shape that belongs to the code.
func (v *Violation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code     ViolationCode   `json:"code"`
		Severity Severity        `json:"severity"`
		Message  string          `json:"message"`
		Metadata json.RawMessage `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Code = raw.Code
	v.Severity = raw.Severity
	v.Message = raw.Message
	v.Metadata = nil
	if len(raw.Metadata) == 0 || string(raw.Metadata) == "null" {
		return nil
	}

	var err error
	switch raw.Code {
	case CodeCategorized:
		v.Metadata, err = decodeMetadata[CategorizedMetadata](raw.Metadata)
	case CodeApprovedCategory:
		v.Metadata, err = decodeMetadata[ApprovedCategoryMetadata](raw.Metadata)
	case CodeCategoryOverrun:
		v.Metadata, err = decodeMetadata[CategoryOverrunMetadata](raw.Metadata)
	case CodeRequiredReceipt:
		v.Metadata, err = decodeMetadata[RequiredReceiptMetadata](raw.Metadata)
	case CodeTransactionLimit:
		v.Metadata, err = decodeMetadata[TransactionLimitMetadata](raw.Metadata)
	case CodeCashLike:
		v.Metadata, err = decodeMetadata[CashLikeMetadata](raw.Metadata)
	default:
		return fmt.Errorf("unknown violation code %q", raw.Code)
	}
	return err
}

func decodeMetadata[T ViolationMetadata](raw json.RawMessage) (ViolationMetadata, error) {
	var m T
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
