package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions ledger. Validation and Resolution
// are JSONB documents.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	TeamID            string          `db:"team_id"`
	TransactionType   string          `db:"transaction_type"`
	Status            string          `db:"status"`
	Amount            decimal.Decimal `db:"amount"`
	CurrencyCode      string          `db:"currency_code"`
	Vendor            string          `db:"vendor"`
	Description       string          `db:"description"`
	CategoryID        *string         `db:"category_id"`
	SystemCategoryID  *string         `db:"system_category_id"`
	BudgetID          *string         `db:"budget_id"`
	ReceiptURL        *string         `db:"receipt_url"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Validation        []byte          `db:"validation"`
	ExceptionSeverity *string         `db:"exception_severity"`
	SpendIntentID     *string         `db:"spend_intent_id"`
	BankTransactionID *string         `db:"bank_transaction_id"`
	Resolution        []byte          `db:"resolution"`
	AuditFields
}
