package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PolicyExceptionType enumerates the divergences between events and policy.
type PolicyExceptionType string

const (
	ExceptionETransferPaidWithoutApproval PolicyExceptionType = "ETRANSFER_PAID_WITHOUT_REQUIRED_APPROVAL"
	ExceptionChequeMissingEvidence        PolicyExceptionType = "CHEQUE_MISSING_EVIDENCE"
	ExceptionUnmatchedBankTransaction     PolicyExceptionType = "UNMATCHED_BANK_TRANSACTION"
)

// PolicyExceptionSeverity is WARNING or CRITICAL.
type PolicyExceptionSeverity string

const (
	PolicySeverityWarning  PolicyExceptionSeverity = "WARNING"
	PolicySeverityCritical PolicyExceptionSeverity = "CRITICAL"
)

// ErrExceptionWithoutReference is returned when neither a transaction nor a bank transaction is referenced.
var ErrExceptionWithoutReference = errors.New("policy exception must reference a transaction or a bank transaction")

// PolicyExceptionDetail is the typed payload of a policy exception, one shape per type.
type PolicyExceptionDetail interface {
	ExceptionType() PolicyExceptionType
}

type ETransferWithoutApprovalDetail struct {
	SpendIntentID                string     `json:"spendIntentID"`
	AmountCents                  int64      `json:"amountCents"`
	BankEffectiveAt              time.Time  `json:"bankEffectiveAt"`
	AuthorizedAt                 *time.Time `json:"authorizedAt"`
	ApprovalsCount               int        `json:"approvalsCount"`
	IndependentRepApprovalsCount int        `json:"independentRepApprovalsCount"`
}

type ChequeMissingEvidenceDetail struct {
	SpendIntentID       string   `json:"spendIntentID"`
	AmountCents         int64    `json:"amountCents"`
	ImageThresholdCents int64    `json:"imageThresholdCents"`
	MissingFields       []string `json:"missingFields"`
}

type UnmatchedBankTransactionDetail struct {
	ExternalTransactionID string    `json:"externalTransactionID"`
	AmountCents           int64     `json:"amountCents"`
	PostedDate            time.Time `json:"postedDate"`
	MerchantName          string    `json:"merchantName"`
	Reason                string    `json:"reason"`
}

func (ETransferWithoutApprovalDetail) ExceptionType() PolicyExceptionType {
	return ExceptionETransferPaidWithoutApproval
}
func (ChequeMissingEvidenceDetail) ExceptionType() PolicyExceptionType {
	return ExceptionChequeMissingEvidence
}
func (UnmatchedBankTransactionDetail) ExceptionType() PolicyExceptionType {
	return ExceptionUnmatchedBankTransaction
}

// PolicyException is an immutable record that a violation happened.
type PolicyException struct {
	PolicyExceptionID string                  `json:"policyExceptionID"`
	TeamID            string                  `json:"teamID"`
	TransactionID     *string                 `json:"transactionID,omitempty"`
	BankTransactionID *string                 `json:"bankTransactionID,omitempty"`
	SpendIntentID     *string                 `json:"spendIntentID,omitempty"`
	Type              PolicyExceptionType     `json:"type"`
	Severity          PolicyExceptionSeverity `json:"severity"`
	Detail            PolicyExceptionDetail   `json:"detail"`
	DetectedAt        time.Time               `json:"detectedAt"`
}

// Validate enforces the reference invariant and that the detail matches the type.
func (p *PolicyException) Validate() error {
	if (p.TransactionID == nil || *p.TransactionID == "") && (p.BankTransactionID == nil || *p.BankTransactionID == "") {
		return ErrExceptionWithoutReference
	}
	if p.Detail != nil && p.Detail.ExceptionType() != p.Type {
		return fmt.Errorf("policy exception detail %s does not match type %s", p.Detail.ExceptionType(), p.Type)
	}
	return nil
}

// DecodeExceptionDetail decodes a stored detail payload into the shape for its type.
func DecodeExceptionDetail(t PolicyExceptionType, raw []byte) (PolicyExceptionDetail, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch t {
	case ExceptionETransferPaidWithoutApproval:
		var d ETransferWithoutApprovalDetail
		err := json.Unmarshal(raw, &d)
		return d, err
	case ExceptionChequeMissingEvidence:
		var d ChequeMissingEvidenceDetail
		err := json.Unmarshal(raw, &d)
		return d, err
	case ExceptionUnmatchedBankTransaction:
		var d UnmatchedBankTransactionDetail
		err := json.Unmarshal(raw, &d)
		return d, err
	}
	return nil, fmt.Errorf("unknown policy exception type %q", t)
}

// UnmarshalJSON decodes the detail into the shape that belongs to the type.
func (p *PolicyException) UnmarshalJSON(data []byte) error {
	type alias PolicyException
	var raw struct {
		alias
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PolicyException(raw.alias)
	detail, err := DecodeExceptionDetail(p.Type, raw.Detail)
	if err != nil {
		return err
	}
	p.Detail = detail
	return nil
}
