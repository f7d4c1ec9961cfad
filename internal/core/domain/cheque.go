package domain

import "time"

// ChequeMetadata is the evidence recorded for a cheque payment.
type ChequeMetadata struct {
	SpendIntentID      string    `json:"spendIntentID"`
	ChequeNumber       string    `json:"chequeNumber,omitempty"`
	SecondSignerUserID *string   `json:"secondSignerUserID,omitempty"`
	SecondSignerName   *string   `json:"secondSignerName,omitempty"`
	ChequeImageFileID  *string   `json:"chequeImageFileID,omitempty"`
	RecordedAt         time.Time `json:"recordedAt"`
	RecordedBy         string    `json:"recordedBy"`
}

// HasSecondSigner reports whether either a second signer user or name is present.
func (c *ChequeMetadata) HasSecondSigner() bool {
	if c == nil {
		return false
	}
	if c.SecondSignerUserID != nil && *c.SecondSignerUserID != "" {
		return true
	}
	return c.SecondSignerName != nil && *c.SecondSignerName != ""
}

// HasImage reports whether a stored cheque image is referenced.
func (c *ChequeMetadata) HasImage() bool {
	return c != nil && c.ChequeImageFileID != nil && *c.ChequeImageFileID != ""
}
