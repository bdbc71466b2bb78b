package dto

import (
	"sort"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
)

// Report amounts are already rounded to 2 places by the services; these converters only
// cross the float boundary, through money.ToFloatLossy.

// DateRangeParams defines optional report window query parameters.
type DateRangeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// PeriodParams defines the period query parameters of period-based reports.
type PeriodParams struct {
	Period domain.Periodicity `form:"period,default=MONTHLY" binding:"periodicity,ne=ONE_TIME"`
	Date   *time.Time         `form:"date" time_format:"2006-01-02"`
}

// AllocationParams defines the grouping of the asset allocation report.
type AllocationParams struct {
	GroupBy domain.AllocationGroup `form:"groupBy,default=assetType" binding:"oneof=assetType platform ticker"`
}

// CategorySummaryResponse represents an expense or income summary.
type CategorySummaryResponse struct {
	Total      float64                     `json:"total"`
	Currency   string                      `json:"currency"`
	ByCategory map[domain.Category]float64 `json:"byCategory"`
}

// ToCategorySummaryResponse converts a domain.CategorySummary.
func ToCategorySummaryResponse(s *domain.CategorySummary) CategorySummaryResponse {
	by := make(map[domain.Category]float64, len(s.ByCategory))
	for c, v := range s.ByCategory {
		by[c] = money.ToFloatLossy(v)
	}
	return CategorySummaryResponse{Total: money.ToFloatLossy(s.Total), Currency: s.Currency, ByCategory: by}
}

// CategoryAmountResponse is one category line.
type CategoryAmountResponse struct {
	Category domain.Category `json:"category"`
	Amount   float64         `json:"amount"`
}

// CategoryBreakdownResponse represents the category breakdown report.
type CategoryBreakdownResponse struct {
	Total     float64                  `json:"total"`
	Breakdown []CategoryAmountResponse `json:"breakdown"`
	Currency  string                   `json:"currency"`
}

// ToCategoryBreakdownResponse converts a domain.CategoryBreakdown.
func ToCategoryBreakdownResponse(b *domain.CategoryBreakdown) CategoryBreakdownResponse {
	lines := make([]CategoryAmountResponse, len(b.Breakdown))
	for i, l := range b.Breakdown {
		lines[i] = CategoryAmountResponse{Category: l.Category, Amount: money.ToFloatLossy(l.Amount)}
	}
	return CategoryBreakdownResponse{Total: money.ToFloatLossy(b.Total), Breakdown: lines, Currency: b.Currency}
}

// IncomeVsExpenseResponse represents the income vs expense report.
type IncomeVsExpenseResponse struct {
	Period     string             `json:"period"`
	PeriodType domain.Periodicity `json:"periodType"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	Income     float64            `json:"income"`
	Expense    float64            `json:"expense"`
	Net        float64            `json:"net"`
	Currency   string             `json:"currency"`
}

// ToIncomeVsExpenseResponse converts a domain.IncomeVsExpenseReport.
func ToIncomeVsExpenseResponse(r *domain.IncomeVsExpenseReport) IncomeVsExpenseResponse {
	return IncomeVsExpenseResponse{
		Period:     r.Period,
		PeriodType: r.PeriodType,
		Start:      r.Start.Format(time.RFC3339),
		End:        r.End.Format(time.RFC3339),
		Income:     money.ToFloatLossy(r.Income),
		Expense:    money.ToFloatLossy(r.Expense),
		Net:        money.ToFloatLossy(r.Net),
		Currency:   r.Currency,
	}
}

// BudgetActualResponse is one budget line.
type BudgetActualResponse struct {
	Category domain.Category `json:"category"`
	Budgeted float64         `json:"budgeted"`
	Spent    float64         `json:"spent"`
}

// BudgetVsActualResponse represents the budget vs actual report.
type BudgetVsActualResponse struct {
	Currency string                 `json:"currency"`
	Period   domain.Periodicity     `json:"period"`
	Result   []BudgetActualResponse `json:"result"`
}

// ToBudgetVsActualResponse converts a domain.BudgetVsActualReport.
func ToBudgetVsActualResponse(r *domain.BudgetVsActualReport) BudgetVsActualResponse {
	lines := make([]BudgetActualResponse, len(r.Result))
	for i, l := range r.Result {
		lines[i] = BudgetActualResponse{
			Category: l.Category,
			Budgeted: money.ToFloatLossy(l.Budgeted),
			Spent:    money.ToFloatLossy(l.Spent),
		}
	}
	return BudgetVsActualResponse{Currency: r.Currency, Period: r.Period, Result: lines}
}

// AllocationSliceResponse is one allocation group.
type AllocationSliceResponse struct {
	Group string  `json:"group"`
	Value float64 `json:"value"`
}

// AssetAllocationResponse represents the asset allocation report.
type AssetAllocationResponse struct {
	Total     float64                   `json:"total"`
	Breakdown []AllocationSliceResponse `json:"breakdown"`
	Currency  string                    `json:"currency"`
	GroupedBy domain.AllocationGroup    `json:"groupedBy"`
}

// ToAssetAllocationResponse converts a domain.AssetAllocationReport.
func ToAssetAllocationResponse(r *domain.AssetAllocationReport) AssetAllocationResponse {
	slices := make([]AllocationSliceResponse, len(r.Breakdown))
	for i, s := range r.Breakdown {
		slices[i] = AllocationSliceResponse{Group: s.Group, Value: money.ToFloatLossy(s.Value)}
	}
	return AssetAllocationResponse{
		Total:     money.ToFloatLossy(r.Total),
		Breakdown: slices,
		Currency:  r.Currency,
		GroupedBy: r.GroupedBy,
	}
}

// GoalProgressResponse is one goal's progress.
type GoalProgressResponse struct {
	GoalID       string  `json:"goalID"`
	Name         string  `json:"name"`
	TargetAmount float64 `json:"targetAmount"`
	SavedAmount  float64 `json:"savedAmount"`
	Currency     string  `json:"currency"`
	TargetDate   string  `json:"targetDate"`
	Progress     float64 `json:"progress"`
	DaysLeft     int     `json:"daysLeft"`
	Completed    bool    `json:"completed"`
}

// ToGoalProgressResponse converts goal progress rows.
func ToGoalProgressResponse(rows []domain.GoalProgress) []GoalProgressResponse {
	res := make([]GoalProgressResponse, len(rows))
	for i, g := range rows {
		res[i] = GoalProgressResponse{
			GoalID:       g.GoalID,
			Name:         g.Name,
			TargetAmount: money.ToFloatLossy(g.TargetAmount),
			SavedAmount:  money.ToFloatLossy(g.SavedAmount),
			Currency:     g.Currency,
			TargetDate:   g.TargetDate.Format(time.RFC3339),
			Progress:     money.ToFloatLossy(g.Progress),
			DaysLeft:     g.DaysLeft,
			Completed:    g.Completed,
		}
	}
	return res
}

// MonthlyObligationResponse is one entry of the goal conflict breakdown.
type MonthlyObligationResponse struct {
	Type             domain.ObligationType `json:"type"`
	ID               string                `json:"id"`
	Name             string                `json:"name"`
	PerMonth         float64               `json:"perMonth"`
	MonthsLeft       *int                  `json:"monthsLeft,omitempty"`
	Recurrence       *domain.Periodicity   `json:"recurrence,omitempty"`
	OriginalCurrency string                `json:"originalCurrency"`
	TargetDate       string                `json:"targetDate"`
}

// GoalConflictResponse represents the goal conflict projection.
type GoalConflictResponse struct {
	Conflict               bool                        `json:"conflict"`
	TotalRequiredPerMonth  float64                     `json:"totalRequiredPerMonth"`
	AvailableMonthlyIncome float64                     `json:"availableMonthlyIncome"`
	OverBudgetBy           *float64                    `json:"overBudgetBy"`
	BelowBudgetBy          *float64                    `json:"belowBudgetBy"`
	Currency               string                      `json:"currency"`
	Breakdown              []MonthlyObligationResponse `json:"breakdown"`
}

// ToGoalConflictResponse converts a domain.GoalConflictReport.
func ToGoalConflictResponse(r *domain.GoalConflictReport) GoalConflictResponse {
	items := make([]MonthlyObligationResponse, len(r.Breakdown))
	for i, o := range r.Breakdown {
		items[i] = MonthlyObligationResponse{
			Type:             o.Type,
			ID:               o.ID,
			Name:             o.Name,
			PerMonth:         money.ToFloatLossy(o.PerMonth),
			MonthsLeft:       o.MonthsLeft,
			Recurrence:       o.Recurrence,
			OriginalCurrency: o.OriginalCurrency,
			TargetDate:       o.TargetDate.Format(time.RFC3339),
		}
	}
	return GoalConflictResponse{
		Conflict:               r.Conflict,
		TotalRequiredPerMonth:  money.ToFloatLossy(r.TotalRequiredPerMonth),
		AvailableMonthlyIncome: money.ToFloatLossy(r.AvailableMonthlyIncome),
		OverBudgetBy:           money.ToFloatLossyPtr(r.OverBudgetBy),
		BelowBudgetBy:          money.ToFloatLossyPtr(r.BelowBudgetBy),
		Currency:               r.Currency,
		Breakdown:              items,
	}
}

// RecurringGroupResponse is one detected recurring charge.
type RecurringGroupResponse struct {
	Key            string                   `json:"key"`
	Frequency      domain.Periodicity       `json:"frequency"`
	Count          int                      `json:"count"`
	Amount         float64                  `json:"amount"`
	Category       domain.Category          `json:"category"`
	Description    string                   `json:"description,omitempty"`
	TransactionIDs []string                 `json:"transactionIDs"`
	Grouping       domain.RecurringGrouping `json:"grouping"`
}

// ToRecurringResponse converts detected groups, ordered by key for stable output.
func ToRecurringResponse(groups []domain.RecurringTransactionGroup) []RecurringGroupResponse {
	res := make([]RecurringGroupResponse, len(groups))
	for i, g := range groups {
		res[i] = RecurringGroupResponse{
			Key:            g.Key,
			Frequency:      g.Frequency,
			Count:          g.Count,
			Amount:         money.ToFloatLossy(g.Amount),
			Category:       g.Category,
			Description:    g.Description,
			TransactionIDs: g.TransactionIDs,
			Grouping:       g.Grouping,
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Key < res[j].Key })
	return res
}
