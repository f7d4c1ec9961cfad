package validation

import (
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

const maxScore = 100

// Engine runs a fixed, ordered rule set.
type Engine struct {
	rules []Rule
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithClock sets the clock used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an engine with the default rules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{rules: DefaultRules(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate evaluates every rule and aggregates the violations.
func (e *Engine) Validate(c Context) domain.ValidationResult {
	violations := make([]domain.Violation, 0)
	for _, rule := range e.rules {
		if v := rule.Evaluate(c); v != nil {
			violations = append(violations, *v)
		}
	}
	return domain.ValidationResult{
		Compliant:   IsCompliant(violations),
		Violations:  violations,
		Score:       Score(violations),
		ValidatedAt: e.now().UTC(),
	}
}

// IsCompliant is true when no violation is ERROR or worse.
func IsCompliant(violations []domain.Violation) bool {
	for _, v := range violations {
		if v.Severity.BlocksCompliance() {
			return false
		}
	}
	return true
}

// Score subtracts every violation's penalty from 100, floored at 0.
func Score(violations []domain.Violation) int {
	score := maxScore
	for _, v := range violations {
		score -= v.Severity.Penalty()
	}
	return max(score, 0)
}

// DeriveStatus maps a validation result onto the transaction lifecycle.
// Callers must not apply it to transactions that are already RESOLVED.
func DeriveStatus(result domain.ValidationResult) domain.TransactionStatus {
	if result.Compliant {
		return domain.TransactionValidated
	}
	return domain.TransactionException
}
