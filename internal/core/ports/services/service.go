package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers and jobs.
type ServiceContainer struct {
	Auth         AuthSvcFacade
	User         UserSvcFacade
	BankAccount  BankAccountSvcFacade
	Transaction  TransactionSvcFacade
	Budget       BudgetSvcFacade
	Goal         GoalSvcFacade
	PlannedEvent PlannedEventSvcFacade
	Holding      HoldingSvcFacade
	CurrencyRate CurrencyRateSvcFacade
	Conversion   ConversionSvc
	Reporting    ReportingService
	AI           AISvc
	Maintenance  MaintenanceSvc
}
