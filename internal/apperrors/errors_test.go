package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestValidationErrors_IsErrValidation(t *testing.T) {
	err := apperrors.ValidationErrors{
		{Field: "amountCents", Message: "must not be negative"},
		{Field: "paymentMethod", Message: "is not recognized"},
	}
	wrapped := fmt.Errorf("create spend intent: %w", err)

	assert.True(t, errors.Is(wrapped, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "amountCents: must not be negative")
	assert.Contains(t, err.Error(), "paymentMethod: is not recognized")

	var list apperrors.ValidationErrors
	assert.True(t, errors.As(wrapped, &list))
	assert.Len(t, list, 2)
}

func TestInvalidState_IsConflict(t *testing.T) {
	err := apperrors.InvalidState("this payment is already authorized")

	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.False(t, errors.Is(err, apperrors.ErrForbidden))
	assert.Equal(t, "this payment is already authorized", apperrors.UserMessage(err, "fallback"))
}

func TestUserMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", apperrors.UserMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "you cannot approve a payment to yourself",
		apperrors.UserMessage(fmt.Errorf("wrap: %w", apperrors.Forbidden("you cannot approve a payment to yourself")), "x"))
}
