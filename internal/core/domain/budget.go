package domain

import "github.com/shopspring/decimal"

// BudgetStatus is the approval state of a season budget.
type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "DRAFT"
	BudgetApproved BudgetStatus = "APPROVED"
	BudgetLocked   BudgetStatus = "LOCKED"
)

// IsApproved reports whether spending may rely on this budget.
func (s BudgetStatus) IsApproved() bool {
	return s == BudgetApproved || s == BudgetLocked
}

// BudgetLineItem is one allocation line of a budget, referenced by spend intents.
type BudgetLineItem struct {
	LineItemID   string       `json:"lineItemID"`
	BudgetID     string       `json:"budgetID"`
	TeamID       string       `json:"teamID"`
	CategoryID   string       `json:"categoryID"`
	BudgetStatus BudgetStatus `json:"budgetStatus"`
}

// BudgetAllocation is the allocated and spent amounts for one category.
type BudgetAllocation struct {
	CategoryID   string          `json:"categoryID"`
	Allocated    decimal.Decimal `json:"allocated"`
	CurrentSpent decimal.Decimal `json:"currentSpent"`
}

// BudgetSnapshot is the budget as seen by the validation engine.
type BudgetSnapshot struct {
	BudgetID    string                      `json:"budgetID"`
	Status      BudgetStatus                `json:"status"`
	Allocations map[string]BudgetAllocation `json:"allocations"`
}

// Allocation returns the allocation row for a category, if any.
func (b *BudgetSnapshot) Allocation(categoryID string) (BudgetAllocation, bool) {
	if b == nil || b.Allocations == nil {
		return BudgetAllocation{}, false
	}
	a, ok := b.Allocations[categoryID]
	return a, ok
}
