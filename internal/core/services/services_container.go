package services

import (
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/platform/config"
)

// Providers groups the outbound adapters the services call.
type Providers struct {
	Rates  portsprov.RateProvider
	Prices portsprov.PriceProvider
	Text   portsprov.TextGenerator
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, providers Providers) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rates come first; conversion and everything that reports money depend on them.
	container.CurrencyRate = NewCurrencyRateService(
		repos.CurrencyRateRepo,
		providers.Rates,
		WithDefaultBaseCurrency(cfg.DefaultBaseCurrency),
		WithMaxStaleDays(cfg.RateMaxStaleDays),
	)
	container.Conversion = NewConversionService(container.CurrencyRate)

	container.Reporting = NewReportingService(ReportingRepositories{
		Users:         repos.UserRepo,
		Transactions:  repos.TransactionRepo,
		Budgets:       repos.BudgetRepo,
		Goals:         repos.GoalRepo,
		PlannedEvents: repos.PlannedEventRepo,
		Holdings:      repos.HoldingRepo,
	}, container.Conversion)

	container.Goal = NewGoalService(repos.GoalRepo, repos.PlannedEventRepo, repos.UserRepo, container.Conversion)
	container.PlannedEvent = NewPlannedEventService(repos.TxManager, repos.PlannedEventRepo, repos.TransactionRepo, repos.UserRepo)
	container.Holding = NewHoldingService(repos.HoldingRepo, repos.UserRepo, providers.Prices, container.Conversion)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.BankAccountRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo)
	container.BankAccount = NewBankAccountService(repos.BankAccountRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(AuthSettings{
		JWTSecret:           cfg.JWTSecret,
		JWTExpiryDuration:   cfg.JWTExpiryDuration,
		JWTIssuer:           cfg.JWTIssuer,
		DefaultBaseCurrency: cfg.DefaultBaseCurrency,
	}, repos.UserRepo)

	container.AI = NewAIService(providers.Text, AIRepositories{
		Users:        repos.UserRepo,
		Transactions: repos.TransactionRepo,
		Budgets:      repos.BudgetRepo,
	}, container.Reporting, container.Goal)

	container.Maintenance = NewMaintenanceService(repos.MaintenanceRepo,
		WithFullVacuum(cfg.MaintenanceFullVacuum),
		WithReindex(cfg.MaintenanceReindex),
	)

	return container
}
