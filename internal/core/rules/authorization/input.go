package authorization

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/utils/accounting"
)

// RawInput is an unvalidated spend proposal as it arrives from a caller.
type RawInput struct {
	Amount           *decimal.Decimal `json:"amountCents"`
	PaymentMethod    string           `json:"paymentMethod" validate:"required,oneof=CASH CHEQUE E_TRANSFER"`
	BudgetLineItemID *string          `json:"budgetLineItemID"`
	BudgetApproved   *bool            `json:"budgetApproved" validate:"required"`
	VendorIsKnown    *bool            `json:"vendorIsKnown" validate:"required"`
	TreasurerIsPayee *bool            `json:"treasurerIsPayee" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateInput checks a raw proposal and reports every violated constraint at
// once as apperrors.ValidationErrors.
func ValidateInput(raw RawInput) (Input, error) {
	var errs apperrors.ValidationErrors

	switch {
	case raw.Amount == nil:
		errs = append(errs, apperrors.FieldError{Field: "amountCents", Message: "is required"})
	case !raw.Amount.IsInteger():
		errs = append(errs, apperrors.FieldError{Field: "amountCents", Message: "must be a whole number of cents"})
	case raw.Amount.IsNegative():
		errs = append(errs, apperrors.FieldError{Field: "amountCents", Message: "must not be negative"})
	case !accounting.InCentsRange(*raw.Amount):
		errs = append(errs, apperrors.FieldError{Field: "amountCents", Message: "is too large"})
	}

	if err := validate.Struct(raw); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, apperrors.FieldError{Field: fe.Field(), Message: messageFor(fe)})
			}
		} else {
			errs = append(errs, apperrors.FieldError{Field: "input", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return Input{}, errs
	}

	in := Input{
		AmountCents:      raw.Amount.IntPart(),
		PaymentMethod:    domain.PaymentMethod(raw.PaymentMethod),
		BudgetApproved:   *raw.BudgetApproved,
		VendorIsKnown:    *raw.VendorIsKnown,
		TreasurerIsPayee: *raw.TreasurerIsPayee,
	}
	if raw.BudgetLineItemID != nil && strings.TrimSpace(*raw.BudgetLineItemID) != "" {
		in.BudgetLineItemID = raw.BudgetLineItemID
	}
	return in, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}
