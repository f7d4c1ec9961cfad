package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Penalty(t *testing.T) {
	assert.Equal(t, 0, domain.SeverityInfo.Penalty())
	assert.Equal(t, 5, domain.SeverityWarning.Penalty())
	assert.Equal(t, 15, domain.SeverityError.Penalty())
	assert.Equal(t, 30, domain.SeverityCritical.Penalty())

	assert.False(t, domain.SeverityWarning.BlocksCompliance())
	assert.True(t, domain.SeverityError.BlocksCompliance())
	assert.True(t, domain.SeverityCritical.BlocksCompliance())
}

func TestViolation_UnmarshalKeepsTypedMetadata(t *testing.T) {
	in := domain.Violation{
		Code:     domain.CodeRequiredReceipt,
		Severity: domain.SeverityError,
		Message:  "receipt required",
		Metadata: domain.RequiredReceiptMetadata{
			Amount:    decimal.NewFromInt(150),
			Threshold: decimal.NewFromInt(100),
		},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out domain.Violation
	require.NoError(t, json.Unmarshal(data, &out))

	meta, ok := out.Metadata.(domain.RequiredReceiptMetadata)
	require.True(t, ok, "metadata should decode to RequiredReceiptMetadata, got %T", out.Metadata)
	assert.True(t, meta.Amount.Equal(decimal.NewFromInt(150)))
	assert.True(t, meta.Threshold.Equal(decimal.NewFromInt(100)))
}

func TestViolation_UnmarshalUnknownCode(t *testing.T) {
	var v domain.Violation
	err := json.Unmarshal([]byte(`{"code":"NOPE","severity":"ERROR","message":"x","metadata":{}}`), &v)
	assert.Error(t, err)
}

func TestPolicyException_Validate(t *testing.T) {
	bankID := "bank-1"
	ok := domain.PolicyException{
		BankTransactionID: &bankID,
		Type:              domain.ExceptionUnmatchedBankTransaction,
		Detail:            domain.UnmatchedBankTransactionDetail{ExternalTransactionID: "ext-1"},
	}
	assert.NoError(t, ok.Validate())

	missing := domain.PolicyException{Type: domain.ExceptionUnmatchedBankTransaction}
	assert.ErrorIs(t, missing.Validate(), domain.ErrExceptionWithoutReference)

	mismatched := domain.PolicyException{
		BankTransactionID: &bankID,
		Type:              domain.ExceptionChequeMissingEvidence,
		Detail:            domain.UnmatchedBankTransactionDetail{},
	}
	assert.Error(t, mismatched.Validate())
}

func TestPolicyException_JSONRoundTripDetail(t *testing.T) {
	bankID := "bank-1"
	authorizedAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	in := domain.PolicyException{
		PolicyExceptionID: "pe-1",
		BankTransactionID: &bankID,
		Type:              domain.ExceptionETransferPaidWithoutApproval,
		Severity:          domain.PolicySeverityCritical,
		Detail: domain.ETransferWithoutApprovalDetail{
			SpendIntentID:   "si-1",
			BankEffectiveAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			AuthorizedAt:    &authorizedAt,
			ApprovalsCount:  2,
		},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out domain.PolicyException
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "pe-1", out.PolicyExceptionID)
	detail, ok := out.Detail.(domain.ETransferWithoutApprovalDetail)
	require.True(t, ok)
	assert.Equal(t, "si-1", detail.SpendIntentID)
	assert.Equal(t, 2, detail.ApprovalsCount)
	require.NotNil(t, detail.AuthorizedAt)
	assert.True(t, detail.AuthorizedAt.Equal(authorizedAt))
}
