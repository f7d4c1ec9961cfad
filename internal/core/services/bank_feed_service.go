package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/SscSPs/team_cfo_backend/internal/apperrors"
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
	"github.com/SscSPs/team_cfo_backend/internal/utils/accounting"
)

// bankFeedService normalizes and stores bank-feed batches.
type bankFeedService struct {
	BaseService
	bankRepo portsrepo.BankTransactionRepositoryFacade
}

// NewBankFeedService creates a new BankFeedService.
func NewBankFeedService(bankRepo portsrepo.BankTransactionRepositoryFacade, opts ...Option) portssvc.BankFeedSvcFacade {
	s := &bankFeedService{bankRepo: bankRepo}
	s.apply(opts)
	return s
}

var _ portssvc.BankFeedSvcFacade = (*bankFeedService)(nil)

// IngestBankTransactions upserts every entry by external id. A bad row is
// reported in the result and never aborts the rest of the batch.
func (s *bankFeedService) IngestBankTransactions(ctx context.Context, teamID string, entries []domain.BankFeedEntry, userID string) (*domain.IngestionResult, error) {
	if err := s.AuthorizeUser(ctx, userID, teamID, domain.RoleManager); err != nil {
		return nil, err
	}

	result := &domain.IngestionResult{Errors: []domain.IngestionRowError{}}
	fail := func(externalID string, err error) {
		result.Errored++
		result.Errors = append(result.Errors, domain.IngestionRowError{ExternalID: externalID, Error: err.Error()})
	}

	for _, entry := range entries {
		row, err := s.normalize(teamID, entry)
		if err != nil {
			fail(entry.ExternalID, err)
			continue
		}

		outcome, err := s.bankRepo.UpsertBankTransaction(ctx, row)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidState) {
				fail(entry.ExternalID, fmt.Errorf("already reconciled, amount and posting details cannot change"))
				continue
			}
			if errors.Is(err, apperrors.ErrConflict) {
				fail(entry.ExternalID, fmt.Errorf("external id belongs to another team"))
				continue
			}
			s.LogError(ctx, err, "Failed to upsert bank transaction", slog.String("external_id", entry.ExternalID))
			fail(entry.ExternalID, fmt.Errorf("could not be stored"))
			continue
		}

		switch outcome {
		case domain.UpsertInserted:
			result.Inserted++
		case domain.UpsertUpdated:
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	s.LogInfo(ctx, "Bank feed ingested",
		slog.String("team_id", teamID),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("errored", result.Errored))
	return result, nil
}

func (s *bankFeedService) normalize(teamID string, entry domain.BankFeedEntry) (domain.PlaidBankTransaction, error) {
	externalID := strings.TrimSpace(entry.ExternalID)
	if externalID == "" {
		return domain.PlaidBankTransaction{}, fmt.Errorf("externalID is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(entry.CurrencyCode))
	if len(currency) != 3 {
		return domain.PlaidBankTransaction{}, fmt.Errorf("currencyCode must be a three letter ISO code")
	}
	if entry.PostedDate.IsZero() {
		return domain.PlaidBankTransaction{}, fmt.Errorf("postedDate is required")
	}
	if entry.Amount.IsZero() {
		return domain.PlaidBankTransaction{}, fmt.Errorf("amount must not be zero")
	}
	cents, err := accounting.AbsCents(entry.Amount)
	if err != nil {
		return domain.PlaidBankTransaction{}, err
	}

	now := s.Now()
	row := domain.PlaidBankTransaction{
		BankTransactionID:     uuid.NewString(),
		TeamID:                teamID,
		ExternalTransactionID: externalID,
		AmountCents:           cents,
		CurrencyCode:          currency,
		PostedDate:            entry.PostedDate.UTC(),
		MerchantName:          strings.TrimSpace(entry.MerchantName),
		RawName:               strings.TrimSpace(entry.RawName),
		PaymentChannel:        entry.PaymentChannel,
		Pending:               entry.Pending,
		RawPayload:            entry.Raw,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if entry.AuthorizedDate != nil {
		authorized := entry.AuthorizedDate.UTC()
		row.AuthorizedDate = &authorized
	}

	digest, err := payloadDigest(row)
	if err != nil {
		return domain.PlaidBankTransaction{}, err
	}
	row.PayloadDigest = digest
	return row, nil
}

// payloadDigest hashes the fields an upstream resync can change, so rows that
// come back identical are left alone.
func payloadDigest(row domain.PlaidBankTransaction) (string, error) {
	canonical, err := json.Marshal(struct {
		AmountCents    int64           `json:"a"`
		CurrencyCode   string          `json:"c"`
		PostedDate     string          `json:"p"`
		AuthorizedDate *string         `json:"ad,omitempty"`
		MerchantName   string          `json:"m"`
		RawName        string          `json:"n"`
		PaymentChannel string          `json:"ch"`
		Pending        bool            `json:"pe"`
		Raw            json.RawMessage `json:"r,omitempty"`
	}{
		AmountCents:    row.AmountCents,
		CurrencyCode:   row.CurrencyCode,
		PostedDate:     row.PostedDate.Format(time.RFC3339Nano),
		AuthorizedDate: formatOptionalTime(row.AuthorizedDate),
		MerchantName:   row.MerchantName,
		RawName:        row.RawName,
		PaymentChannel: row.PaymentChannel,
		Pending:        row.Pending,
		Raw:            compactJSON(row.RawPayload),
	})
	if err != nil {
		return "", fmt.Errorf("raw payload is not valid JSON: %w", err)
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func compactJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
