package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// Rule evaluates one compliance predicate. A nil result means the rule passed or did not apply.
type Rule interface {
	Code() domain.ViolationCode
	Evaluate(c Context) *domain.Violation
}

// RuleFunc adapts a plain function into a Rule.
type RuleFunc struct {
	RuleCode domain.ViolationCode
	Fn       func(c Context) *domain.Violation
}

func (r RuleFunc) Code() domain.ViolationCode           { return r.RuleCode }
func (r RuleFunc) Evaluate(c Context) *domain.Violation { return r.Fn(c) }

// DefaultRules returns the rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc{domain.CodeCategorized, Categorized},
		RuleFunc{domain.CodeApprovedCategory, ApprovedCategory},
		RuleFunc{domain.CodeCategoryOverrun, CategoryOverrun},
		RuleFunc{domain.CodeRequiredReceipt, RequiredReceipt},
		RuleFunc{domain.CodeTransactionLimit, TransactionLimit},
		RuleFunc{domain.CodeCashLike, CashLike},
	}
}

var hundred = decimal.NewFromInt(100)

// Categorized fails when neither a user nor a system category is assigned.
func Categorized(c Context) *domain.Violation {
	if _, ok := c.category(); ok {
		return nil
	}
	return &domain.Violation{
		Code:     domain.CodeCategorized,
		Severity: domain.SeverityError,
		Message:  "transaction has no category",
		Metadata: domain.CategorizedMetadata{},
	}
}

// ApprovedCategory fails when the assigned category has no allocation in the budget.
func ApprovedCategory(c Context) *domain.Violation {
	categoryID, ok := c.category()
	if !ok || c.Budget == nil {
		return nil
	}
	if _, found := c.Budget.Allocation(categoryID); found {
		return nil
	}
	return &domain.Violation{
		Code:     domain.CodeApprovedCategory,
		Severity: domain.SeverityError,
		Message:  "category is not part of the approved budget",
		Metadata: domain.ApprovedCategoryMetadata{BudgetID: c.Budget.BudgetID, CategoryID: categoryID},
	}
}

// CategoryOverrun fails when an expense pushes its category past the allocation
// by more than the tolerance percent.
func CategoryOverrun(c Context) *domain.Violation {
	if !c.isExpense() || c.Budget == nil {
		return nil
	}
	categoryID, ok := c.category()
	if !ok {
		return nil
	}
	alloc, found := c.Budget.Allocation(categoryID)
	if !found {
		return nil
	}

	overage := alloc.CurrentSpent.Add(c.Amount).Sub(alloc.Allocated)
	if !overage.IsPositive() {
		return nil
	}

	meta := domain.CategoryOverrunMetadata{
		CategoryID:       categoryID,
		Allocated:        alloc.Allocated,
		CurrentSpent:     alloc.CurrentSpent,
		Amount:           c.Amount,
		Overage:          overage,
		TolerancePercent: c.Policy.CategoryOverrunTolerancePercent,
	}
	// Nothing allocated means any overage is an unbounded overrun.
	if alloc.Allocated.IsPositive() {
		meta.OverrunPercent = overage.Div(alloc.Allocated).Mul(hundred).Round(2)
		if meta.OverrunPercent.LessThanOrEqual(c.Policy.CategoryOverrunTolerancePercent) {
			return nil
		}
	}

	return &domain.Violation{
		Code:     domain.CodeCategoryOverrun,
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("category budget exceeded by %s", overage.StringFixed(2)),
		Metadata: meta,
	}
}

// RequiredReceipt fails when an expense at or above the receipt threshold has no receipt.
func RequiredReceipt(c Context) *domain.Violation {
	if !c.isExpense() || c.hasReceipt() || c.Amount.LessThan(c.Policy.ReceiptThreshold) {
		return nil
	}
	return &domain.Violation{
		Code:     domain.CodeRequiredReceipt,
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("a receipt is required for amounts of %s or more", c.Policy.ReceiptThreshold.StringFixed(2)),
		Metadata: domain.RequiredReceiptMetadata{Amount: c.Amount, Threshold: c.Policy.ReceiptThreshold},
	}
}

// TransactionLimit fails when the amount is strictly above the per-transaction ceiling.
func TransactionLimit(c Context) *domain.Violation {
	if !c.Policy.HasTransactionLimit() || !c.Amount.GreaterThan(c.Policy.TransactionLimit) {
		return nil
	}
	return &domain.Violation{
		Code:     domain.CodeTransactionLimit,
		Severity: domain.SeverityError,
		Message:  fmt.Sprintf("amount exceeds the transaction limit of %s", c.Policy.TransactionLimit.StringFixed(2)),
		Metadata: domain.TransactionLimitMetadata{Amount: c.Amount, Limit: c.Policy.TransactionLimit},
	}
}

// CashLikeTerms are matched against vendor and description, most specific first.
var CashLikeTerms = []string{
	"atm withdrawal",
	"money order",
	"prepaid card",
	"petty cash",
	"gift card",
	"giftcard",
	"cash",
}

var cashLikePatterns = compileTerms(CashLikeTerms)

func compileTerms(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return out
}

// MatchCashLikeTerm returns the first cash-like term found in text.
func MatchCashLikeTerm(text string) (string, bool) {
	text = strings.ToLower(text)
	for i, re := range cashLikePatterns {
		if re.MatchString(text) {
			return CashLikeTerms[i], true
		}
	}
	return "", false
}

// CashLike flags cash-equivalent purchases for review. It escalates to CRITICAL
// when the amount is also above the transaction limit.
func CashLike(c Context) *domain.Violation {
	if !c.Policy.CashLikeRequiresReview {
		return nil
	}
	term, found := MatchCashLikeTerm(c.Vendor + " " + c.Description)
	if !found {
		return nil
	}

	exceeds := c.Policy.HasTransactionLimit() && c.Amount.GreaterThan(c.Policy.TransactionLimit)
	severity := domain.SeverityError
	if exceeds {
		severity = domain.SeverityCritical
	}
	return &domain.Violation{
		Code:     domain.CodeCashLike,
		Severity: severity,
		Message:  fmt.Sprintf("cash-like purchase (%q) requires review", term),
		Metadata: domain.CashLikeMetadata{
			MatchedTerm:  term,
			Amount:       c.Amount,
			Limit:        c.Policy.TransactionLimit,
			ExceedsLimit: exceeds,
		},
	}
}
