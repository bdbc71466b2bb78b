package pgsql

import (
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Resource names used in not-found and conflict messages.
const (
	userResource         = "User"
	bankAccountResource  = "BankAccount"
	transactionResource  = "Transaction"
	budgetResource       = "Budget"
	goalResource         = "Goal"
	plannedEventResource = "PlannedEvent"
	holdingResource      = "Holding"
	rateResource         = "CurrencyRate"
	rateHistoryResource  = "CurrencyRateHistory"
	maintenanceResource  = "Database"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	txManager := newPgxTransactionManager(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:        txManager,
		UserRepo:         newPgxUserRepository(dbPool),
		BankAccountRepo:  newPgxBankAccountRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		GoalRepo:         newPgxGoalRepository(dbPool),
		PlannedEventRepo: newPgxPlannedEventRepository(dbPool),
		HoldingRepo:      newPgxHoldingRepository(dbPool),
		CurrencyRateRepo: newPgxCurrencyRateRepository(dbPool, txManager),
		MaintenanceRepo:  newPgxMaintenanceRepository(dbPool),
	}
}
