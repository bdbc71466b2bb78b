package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount is one category's total in a report.
type CategoryAmount struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategorySummary totals transactions of one type by category.
type CategorySummary struct {
	Total      decimal.Decimal              `json:"total"`
	Currency   string                       `json:"currency"`
	ByCategory map[Category]decimal.Decimal `json:"byCategory"`
}

// CategoryBreakdown lists expense categories, largest first.
type CategoryBreakdown struct {
	Total     decimal.Decimal  `json:"total"`
	Breakdown []CategoryAmount `json:"breakdown"`
	Currency  string           `json:"currency"`
}

// IncomeVsExpenseReport compares income and expense over a period window.
type IncomeVsExpenseReport struct {
	Period     string          `json:"period"` // display label, e.g. "Q1 2025"
	PeriodType Periodicity     `json:"periodType"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	Currency   string          `json:"currency"`
}

// BudgetActual is one budget line with what was spent against it.
type BudgetActual struct {
	Category Category        `json:"category"`
	Budgeted decimal.Decimal `json:"budgeted"`
	Spent    decimal.Decimal `json:"spent"`
}

// BudgetVsActualReport holds every budget of a period.
type BudgetVsActualReport struct {
	Currency string         `json:"currency"`
	Period   Periodicity    `json:"period"`
	Result   []BudgetActual `json:"result"`
}

// AllocationGroup selects the holding attribute asset allocation groups by.
type AllocationGroup string

const (
	GroupByAssetType AllocationGroup = "assetType"
	GroupByPlatform  AllocationGroup = "platform"
	GroupByTicker    AllocationGroup = "ticker"
)

// IsValid reports whether g is a supported grouping.
func (g AllocationGroup) IsValid() bool {
	return g == GroupByAssetType || g == GroupByPlatform || g == GroupByTicker
}

// AllocationSlice is the value of one group.
type AllocationSlice struct {
	Group string          `json:"group"`
	Value decimal.Decimal `json:"value"`
}

// AssetAllocationReport values all holdings in the base currency.
type AssetAllocationReport struct {
	Total     decimal.Decimal   `json:"total"`
	Breakdown []AllocationSlice `json:"breakdown"`
	Currency  string            `json:"currency"`
	GroupedBy AllocationGroup   `json:"groupedBy"`
}

// GoalProgress is a goal with its completion percentage and days remaining.
type GoalProgress struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Currency     string          `json:"currency"`
	TargetDate   time.Time       `json:"targetDate"`
	Progress     decimal.Decimal `json:"progress"`
	DaysLeft     int             `json:"daysLeft"` // negative when overdue
	Completed    bool            `json:"completed"`
}

// ObligationType tags an entry of a goal-conflict breakdown.
type ObligationType string

const (
	ObligationGoal         ObligationType = "GOAL"
	ObligationPlannedEvent ObligationType = "PLANNED_EVENT"
)

// MonthlyObligation is one goal or planned event normalized to a monthly amount.
type MonthlyObligation struct {
	Type             ObligationType  `json:"type"`
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	PerMonth         decimal.Decimal `json:"perMonth"`
	MonthsLeft       *int            `json:"monthsLeft,omitempty"`
	Recurrence       *Periodicity    `json:"recurrence,omitempty"`
	OriginalCurrency string          `json:"originalCurrency"`
	TargetDate       time.Time       `json:"targetDate"`
}

// GoalConflictReport compares monthly obligations against monthly income.
// At most one of OverBudgetBy and BelowBudgetBy is set.
type GoalConflictReport struct {
	Conflict               bool                `json:"conflict"`
	TotalRequiredPerMonth  decimal.Decimal     `json:"totalRequiredPerMonth"`
	AvailableMonthlyIncome decimal.Decimal     `json:"availableMonthlyIncome"`
	OverBudgetBy           *decimal.Decimal    `json:"overBudgetBy"`
	BelowBudgetBy          *decimal.Decimal    `json:"belowBudgetBy"`
	Currency               string              `json:"currency"`
	Breakdown              []MonthlyObligation `json:"breakdown"`
}

// RecurringGrouping tells which key matched a recurring group.
type RecurringGrouping string

const (
	GroupingPrimary  RecurringGrouping = "PRIMARY"
	GroupingFallback RecurringGrouping = "FALLBACK"
)

// RecurringTransactionGroup is a set of transactions detected as one recurring charge.
type RecurringTransactionGroup struct {
	Key            string            `json:"key"`
	Frequency      Periodicity       `json:"frequency"`
	Count          int               `json:"count"`
	Amount         decimal.Decimal   `json:"amount"`
	Category       Category          `json:"category"`
	Description    string            `json:"description,omitempty"`
	TransactionIDs []string          `json:"transactionIDs"`
	Grouping       RecurringGrouping `json:"grouping"`
}
