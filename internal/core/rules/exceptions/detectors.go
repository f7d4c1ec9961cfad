// Package exceptions inspects a reconciled payment against policy and reports
// violations that only become visible once money has moved. Detectors are
// pure; the returned exceptions carry no id or detection time yet.
package exceptions

import (
	"time"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
)

// Names of the cheque evidence fields reported as missing.
const (
	FieldChequeMetadata    = "chequeMetadata"
	FieldSecondSigner      = "secondSigner"
	FieldChequeImageFileID = "chequeImageFileID"
)

// DetectETransferPaidWithoutApproval flags an e-transfer that required manual
// approval and left the account before (or without) being authorized.
func DetectETransferPaidWithoutApproval(intent domain.SpendIntent, bankTx domain.PlaidBankTransaction, quorum domain.QuorumStatus) *domain.PolicyException {
	if intent.PaymentMethod != domain.PaymentMethodETransfer || !intent.RequiresManualApproval {
		return nil
	}
	effective := bankTx.EffectiveTime()
	if intent.AuthorizedAt != nil && !effective.Before(*intent.AuthorizedAt) {
		return nil
	}

	return newException(intent, bankTx, domain.ExceptionETransferPaidWithoutApproval, domain.PolicySeverityCritical,
		domain.ETransferWithoutApprovalDetail{
			SpendIntentID:                intent.SpendIntentID,
			AmountCents:                  intent.AmountCents,
			BankEffectiveAt:              effective,
			AuthorizedAt:                 intent.AuthorizedAt,
			ApprovalsCount:               quorum.ApprovalsCount,
			IndependentRepApprovalsCount: quorum.IndependentRepApprovalsCount,
		})
}

// DetectChequeMissingEvidence flags a cheque without a second signer, or
// without a stored image when the amount reaches the image threshold.
func DetectChequeMissingEvidence(intent domain.SpendIntent, bankTx domain.PlaidBankTransaction, cheque *domain.ChequeMetadata, policy domain.Policy) *domain.PolicyException {
	if intent.PaymentMethod != domain.PaymentMethodCheque {
		return nil
	}

	imageRequired := intent.AmountCents >= policy.ChequeImageThresholdCents
	var missing []string
	if cheque == nil {
		missing = append(missing, FieldChequeMetadata)
	}
	if !cheque.HasSecondSigner() {
		missing = append(missing, FieldSecondSigner)
	}
	if imageRequired && !cheque.HasImage() {
		missing = append(missing, FieldChequeImageFileID)
	}
	if len(missing) == 0 {
		return nil
	}

	severity := domain.PolicySeverityWarning
	if imageRequired {
		severity = domain.PolicySeverityCritical
	}
	return newException(intent, bankTx, domain.ExceptionChequeMissingEvidence, severity,
		domain.ChequeMissingEvidenceDetail{
			SpendIntentID:       intent.SpendIntentID,
			AmountCents:         intent.AmountCents,
			ImageThresholdCents: policy.ChequeImageThresholdCents,
			MissingFields:       missing,
		})
}

// BuildUnmatchedException records a bank transaction no spend intent could be linked to.
func BuildUnmatchedException(bankTx domain.PlaidBankTransaction, reason string) domain.PolicyException {
	bankID := bankTx.BankTransactionID
	return domain.PolicyException{
		TeamID:            bankTx.TeamID,
		BankTransactionID: &bankID,
		Type:              domain.ExceptionUnmatchedBankTransaction,
		Severity:          domain.PolicySeverityWarning,
		Detail: domain.UnmatchedBankTransactionDetail{
			ExternalTransactionID: bankTx.ExternalTransactionID,
			AmountCents:           bankTx.AmountCents,
			PostedDate:            bankTx.PostedDate,
			MerchantName:          bankTx.Description(),
			Reason:                reason,
		},
	}
}

// Detect runs every detector for a matched pair.
func Detect(intent domain.SpendIntent, bankTx domain.PlaidBankTransaction, quorum domain.QuorumStatus, cheque *domain.ChequeMetadata, policy domain.Policy) []domain.PolicyException {
	found := make([]domain.PolicyException, 0, 2)
	if e := DetectETransferPaidWithoutApproval(intent, bankTx, quorum); e != nil {
		found = append(found, *e)
	}
	if e := DetectChequeMissingEvidence(intent, bankTx, cheque, policy); e != nil {
		found = append(found, *e)
	}
	return found
}

// Stamp fills the identity fields a persisted exception needs.
func Stamp(e *domain.PolicyException, id string, transactionID *string, detectedAt time.Time) {
	e.PolicyExceptionID = id
	if transactionID != nil && e.TransactionID == nil {
		e.TransactionID = transactionID
	}
	e.DetectedAt = detectedAt
}

func newException(intent domain.SpendIntent, bankTx domain.PlaidBankTransaction, t domain.PolicyExceptionType, s domain.PolicyExceptionSeverity, detail domain.PolicyExceptionDetail) *domain.PolicyException {
	bankID := bankTx.BankTransactionID
	intentID := intent.SpendIntentID
	return &domain.PolicyException{
		TeamID:            intent.TeamID,
		BankTransactionID: &bankID,
		SpendIntentID:     &intentID,
		Type:              t,
		Severity:          s,
		Detail:            detail,
	}
}
