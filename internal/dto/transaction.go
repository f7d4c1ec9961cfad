package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// --- Ledger transaction DTOs ---

// CreateTransactionRequest defines data for a manual ledger entry.
type CreateTransactionRequest struct {
	Type            domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" swaggertype:"string"`
	CurrencyCode    string                 `json:"currencyCode" binding:"omitempty,iso4217"`
	Vendor          string                 `json:"vendor" binding:"max=200"`
	Description     string                 `json:"description" binding:"max=1000"`
	CategoryID      *string                `json:"categoryID"`
	BudgetID        *string                `json:"budgetID"`
	ReceiptURL      *string                `json:"receiptURL" binding:"omitempty,url"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
}

// ResolveTransactionRequest closes an exception.
type ResolveTransactionRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

// ListTransactionsParams defines query parameters for listing ledger transactions.
type ListTransactionsParams struct {
	ListParams
	Status *string `form:"status" binding:"omitempty,oneof=IMPORTED VALIDATED EXCEPTION RESOLVED DRAFT PENDING APPROVED REJECTED"`
}

// ListTransactionsResponse wraps a page of ledger transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
