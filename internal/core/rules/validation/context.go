// Package validation runs the ordered compliance rules over a ledger
// transaction and turns the result into a score, a verdict and a status.
package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// Context is everything a rule may look at. It is a snapshot; rules never load data.
type Context struct {
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Vendor      string
	Description string
	CategoryID  *string
	ReceiptURL  *string
	Budget      *domain.BudgetSnapshot
	Policy      domain.Policy
}

// NewContext builds a rule context from a transaction, the budget it draws on and the effective policy.
func NewContext(tx domain.Transaction, budget *domain.BudgetSnapshot, policy domain.Policy) Context {
	return Context{
		Type:        tx.Type,
		Amount:      tx.Amount.Abs(),
		Vendor:      tx.Vendor,
		Description: tx.Description,
		CategoryID:  tx.EffectiveCategoryID(),
		ReceiptURL:  tx.ReceiptURL,
		Budget:      budget,
		Policy:      policy,
	}
}

func (c Context) isExpense() bool { return c.Type == domain.TransactionExpense }

func (c Context) category() (string, bool) {
	if c.CategoryID == nil || *c.CategoryID == "" {
		return "", false
	}
	return *c.CategoryID, true
}

func (c Context) hasReceipt() bool {
	return c.ReceiptURL != nil && strings.TrimSpace(*c.ReceiptURL) != ""
}
