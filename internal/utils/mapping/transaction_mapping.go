package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	"github.com/SscSPs/team_cfo_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction,
// encoding the validation snapshot and resolution as JSON.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	m := models.Transaction{
		TransactionID:     d.TransactionID,
		TeamID:            d.TeamID,
		TransactionType:   string(d.Type),
		Status:            string(d.Status),
		Amount:            d.Amount,
		CurrencyCode:      d.CurrencyCode,
		Vendor:            d.Vendor,
		Description:       d.Description,
		CategoryID:        d.CategoryID,
		SystemCategoryID:  d.SystemCategoryID,
		BudgetID:          d.BudgetID,
		ReceiptURL:        d.ReceiptURL,
		TransactionDate:   d.TransactionDate,
		SpendIntentID:     d.SpendIntentID,
		BankTransactionID: d.BankTransactionID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if d.ExceptionSeverity != nil {
		s := string(*d.ExceptionSeverity)
		m.ExceptionSeverity = &s
	}
	if d.Validation != nil {
		raw, err := json.Marshal(d.Validation)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("encode validation of transaction %s: %w", d.TransactionID, err)
		}
		m.Validation = raw
	}
	if d.Resolution != nil {
		raw, err := json.Marshal(d.Resolution)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("encode resolution of transaction %s: %w", d.TransactionID, err)
		}
		m.Resolution = raw
	}
	return m, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	d := domain.Transaction{
		TransactionID:     m.TransactionID,
		TeamID:            m.TeamID,
		Type:              domain.TransactionType(m.TransactionType),
		Status:            domain.TransactionStatus(m.Status),
		Amount:            m.Amount,
		CurrencyCode:      m.CurrencyCode,
		Vendor:            m.Vendor,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		SystemCategoryID:  m.SystemCategoryID,
		BudgetID:          m.BudgetID,
		ReceiptURL:        m.ReceiptURL,
		TransactionDate:   m.TransactionDate,
		SpendIntentID:     m.SpendIntentID,
		BankTransactionID: m.BankTransactionID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.ExceptionSeverity != nil {
		s := domain.ExceptionSeverity(*m.ExceptionSeverity)
		d.ExceptionSeverity = &s
	}
	if len(m.Validation) > 0 {
		var v domain.ValidationResult
		if err := json.Unmarshal(m.Validation, &v); err != nil {
			return domain.Transaction{}, fmt.Errorf("decode validation of transaction %s: %w", m.TransactionID, err)
		}
		d.Validation = &v
	}
	if len(m.Resolution) > 0 {
		var r domain.Resolution
		if err := json.Unmarshal(m.Resolution, &r); err != nil {
			return domain.Transaction{}, fmt.Errorf("decode resolution of transaction %s: %w", m.TransactionID, err)
		}
		d.Resolution = &r
	}
	return d, nil
}

// ToDomainTransactionSlice converts model Transactions, stopping at the first undecodable row.
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
