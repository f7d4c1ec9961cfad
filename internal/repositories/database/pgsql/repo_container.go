package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TeamRepo:            newPgxTeamRepository(dbPool),
		SpendIntentRepo:     newPgxSpendIntentRepository(dbPool),
		ApprovalRepo:        newPgxApprovalRepository(dbPool),
		BankTransactionRepo: newPgxBankTransactionRepository(dbPool),
		TransactionRepo:     newPgxTransactionRepository(dbPool),
		PolicyExceptionRepo: newPgxPolicyExceptionRepository(dbPool),
		ReconciliationRepo:  newPgxReconciliationRepository(dbPool),
		NotificationOutbox:  newPgxNotificationOutboxRepository(dbPool),
	}
}
