package mapping

import (
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
)

// ToModelBankTransaction converts a domain PlaidBankTransaction to a model BankTransaction
func ToModelBankTransaction(d domain.PlaidBankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID:     d.BankTransactionID,
		TeamID:                d.TeamID,
		ExternalTransactionID: d.ExternalTransactionID,
		AmountCents:           d.AmountCents,
		CurrencyCode:          d.CurrencyCode,
		PostedDate:            d.PostedDate,
		AuthorizedDate:        d.AuthorizedDate,
		MerchantName:          nullIfEmpty(d.MerchantName),
		RawName:               nullIfEmpty(d.RawName),
		PaymentChannel:        nullIfEmpty(d.PaymentChannel),
		Pending:               d.Pending,
		SpendIntentID:         d.SpendIntentID,
		RawPayload:            d.RawPayload,
		PayloadDigest:         d.PayloadDigest,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

// ToDomainBankTransaction converts a model BankTransaction to a domain PlaidBankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.PlaidBankTransaction {
	return domain.PlaidBankTransaction{
		BankTransactionID:     m.BankTransactionID,
		TeamID:                m.TeamID,
		ExternalTransactionID: m.ExternalTransactionID,
		AmountCents:           m.AmountCents,
		CurrencyCode:          m.CurrencyCode,
		PostedDate:            m.PostedDate,
		AuthorizedDate:        m.AuthorizedDate,
		MerchantName:          deref(m.MerchantName),
		RawName:               deref(m.RawName),
		PaymentChannel:        deref(m.PaymentChannel),
		Pending:               m.Pending,
		SpendIntentID:         m.SpendIntentID,
		RawPayload:            m.RawPayload,
		PayloadDigest:         m.PayloadDigest,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}
