package validation

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// ClassifyExceptionSeverity grades a violation set for routing. It is
// independent of the compliant verdict.
func ClassifyExceptionSeverity(violations []domain.Violation, amount decimal.Decimal, policy domain.Policy) domain.ExceptionSeverity {
	errorCount := 0
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityCritical:
			return domain.ExceptionSeverityCritical
		case domain.SeverityError:
			errorCount++
		}
	}

	switch {
	case errorCount > 2:
		return domain.ExceptionSeverityHigh
	case errorCount > 0 && amount.Abs().GreaterThanOrEqual(policy.HighSeverityAmount):
		return domain.ExceptionSeverityHigh
	case errorCount > 0:
		return domain.ExceptionSeverityMedium
	}
	return domain.ExceptionSeverityLow
}
