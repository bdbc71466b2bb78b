package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	UserRepo         UserRepositoryFacade
	BankAccountRepo  BankAccountRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	BudgetRepo       BudgetRepositoryFacade
	GoalRepo         GoalRepositoryFacade
	PlannedEventRepo PlannedEventRepositoryFacade
	HoldingRepo      HoldingRepositoryFacade
	CurrencyRateRepo CurrencyRateRepositoryFacade
	MaintenanceRepo  MaintenanceRepository
}
