package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TeamRepo            TeamRepositoryFacade
	SpendIntentRepo     SpendIntentRepositoryFacade
	ApprovalRepo        ApprovalRepositoryFacade
	BankTransactionRepo BankTransactionRepositoryFacade
	TransactionRepo     TransactionRepositoryFacade
	PolicyExceptionRepo PolicyExceptionRepositoryFacade
	ReconciliationRepo  ReconciliationRepositoryFacade
	NotificationOutbox  NotificationOutboxWriter
}
