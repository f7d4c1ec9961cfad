package services

import (
	"github.com/SscSPs/team_cfo_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/team_cfo_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/team_cfo_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(policy domain.Policy, repos portsrepo.RepositoryProvider, notifier portssvc.NotifierSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The team service is the authorizer and policy source for everything else.
	container.Team = NewTeamService(repos.TeamRepo, policy)

	shared := []Option{
		WithTeamAuthorizer(container.Team),
		WithNotifier(notifier),
	}

	container.SpendIntent = NewSpendIntentService(repos.SpendIntentRepo, repos.TeamRepo, container.Team, shared...)
	container.Approval = NewApprovalService(repos.ApprovalRepo, repos.SpendIntentRepo, container.Team, shared...)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.TeamRepo, container.Team, shared...)
	container.BankFeed = NewBankFeedService(repos.BankTransactionRepo, shared...)
	container.Reconciliation = NewReconciliationService(
		repos.BankTransactionRepo,
		repos.SpendIntentRepo,
		repos.PolicyExceptionRepo,
		repos.ReconciliationRepo,
		container.Team,
		shared...,
	)

	return container
}
