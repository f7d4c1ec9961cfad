package mapping_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
	"github.com/SscSPs/team_cfo_backend/internal/utils/mapping"
)

func strPtr(s string) *string { return &s }

func TestTransaction_ValidationSnapshotSurvivesStorage(t *testing.T) {
	validatedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	severity := domain.ExceptionSeverityHigh
	txn := domain.Transaction{
		TransactionID:   "txn-1",
		TeamID:          "team-1",
		Type:            domain.TransactionExpense,
		Status:          domain.TransactionException,
		Amount:          decimal.RequireFromString("620.00"),
		CurrencyCode:    "CAD",
		CategoryID:      strPtr("equipment"),
		TransactionDate: validatedAt,
		Validation: &domain.ValidationResult{
			Compliant: false,
			Score:     85,
			Violations: []domain.Violation{{
				Code:     domain.CodeTransactionLimit,
				Severity: domain.SeverityError,
				Message:  "amount exceeds the per-transaction limit",
				Metadata: domain.TransactionLimitMetadata{
					Amount: decimal.RequireFromString("620.00"),
					Limit:  decimal.NewFromInt(500),
				},
			}},
			ValidatedAt: validatedAt,
		},
		ExceptionSeverity: &severity,
	}

	m, err := mapping.ToModelTransaction(txn)
	require.NoError(t, err)
	assert.Equal(t, "EXCEPTION", m.Status)
	require.NotNil(t, m.ExceptionSeverity)
	assert.Equal(t, "HIGH", *m.ExceptionSeverity)
	assert.Nil(t, m.Resolution)

	back, err := mapping.ToDomainTransaction(m)
	require.NoError(t, err)
	require.NotNil(t, back.Validation)
	require.Len(t, back.Validation.Violations, 1)
	meta, ok := back.Validation.Violations[0].Metadata.(domain.TransactionLimitMetadata)
	require.True(t, ok, "metadata keeps its concrete type")
	assert.True(t, meta.Limit.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 85, back.Validation.Score)
	assert.Nil(t, back.Resolution)
}

func TestTransaction_UndecodableValidationIsAnError(t *testing.T) {
	_, err := mapping.ToDomainTransaction(models.Transaction{
		TransactionID: "txn-2",
		Validation:    []byte(`{"violations":[{"code":"NOT_A_RULE","metadata":{}}]}`),
	})
	assert.Error(t, err)
}

func TestPolicyException_DetailKeepsItsShape(t *testing.T) {
	detectedAt := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	e := domain.PolicyException{
		PolicyExceptionID: "pe-1",
		TeamID:            "team-1",
		TransactionID:     strPtr("txn-1"),
		SpendIntentID:     strPtr("si-1"),
		Type:              domain.ExceptionChequeMissingEvidence,
		Severity:          domain.PolicySeverityCritical,
		Detail: domain.ChequeMissingEvidenceDetail{
			SpendIntentID:       "si-1",
			AmountCents:         60000,
			ImageThresholdCents: 50000,
			MissingFields:       []string{"secondSigner", "chequeImage"},
		},
		DetectedAt: detectedAt,
	}

	m, err := mapping.ToModelPolicyException(e)
	require.NoError(t, err)
	assert.Equal(t, "CHEQUE_MISSING_EVIDENCE", m.ExceptionType)
	assert.Nil(t, m.BankTransactionID)

	back, err := mapping.ToDomainPolicyException(m)
	require.NoError(t, err)
	detail, ok := back.Detail.(domain.ChequeMissingEvidenceDetail)
	require.True(t, ok)
	assert.Equal(t, []string{"secondSigner", "chequeImage"}, detail.MissingFields)
	assert.Equal(t, detectedAt, back.DetectedAt)
}

func TestToModelNotification_EmptyActorIsNull(t *testing.T) {
	m, err := mapping.ToModelNotification("n-1", domain.Notification{
		Event:      domain.EventPolicyExceptionRaised,
		TeamID:     "team-1",
		Subject:    "Cheque paid without evidence",
		Attributes: map[string]string{"severity": "CRITICAL"},
	})
	require.NoError(t, err)
	assert.Nil(t, m.ActorID)
	assert.JSONEq(t, `{"severity":"CRITICAL"}`, string(m.Attributes))
}
