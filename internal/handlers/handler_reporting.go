package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports. All amounts are in the
// user's base currency.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	goalService      portssvc.GoalSvcFacade
}

func newReportingHandler(rs portssvc.ReportingService, gs portssvc.GoalSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs, goalService: gs}
}

// registerReportingRoutes registers all reporting related routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, goalService portssvc.GoalSvcFacade) {
	h := newReportingHandler(reportingService, goalService)

	reports := rg.Group("/reports")
	{
		reports.GET("/expense-summary", h.getExpenseSummary)
		reports.GET("/income-summary", h.getIncomeSummary)
		reports.GET("/category-breakdown", h.getCategoryBreakdown)
		reports.GET("/income-vs-expense", h.getIncomeVsExpense)
		reports.GET("/budget-vs-actual", h.getBudgetVsActual)
		reports.GET("/asset-allocation", h.getAssetAllocation)
		reports.GET("/goal-progress", h.getGoalProgress)
		reports.GET("/goal-conflicts", h.getGoalConflicts)
		reports.GET("/recurring", h.getRecurring)
	}
}

// getExpenseSummary godoc
// @Summary Expense summary
// @Description Total expenses and per-category totals, converted at each transaction's historical rate.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategorySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/expense-summary [get]
func (h *reportingHandler) getExpenseSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.reportingService.ExpenseSummary(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate expense summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(summary))
}

// getIncomeSummary godoc
// @Summary Income summary
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategorySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/income-summary [get]
func (h *reportingHandler) getIncomeSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.reportingService.IncomeSummary(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate income summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(summary))
}

// getCategoryBreakdown godoc
// @Summary Category breakdown
// @Description Expense categories sorted by amount with their share of the total.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryBreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/category-breakdown [get]
func (h *reportingHandler) getCategoryBreakdown(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	breakdown, err := h.reportingService.CategoryBreakdown(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate category breakdown")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(breakdown))
}

// getIncomeVsExpense godoc
// @Summary Income versus expense
// @Description Income, expense and savings rate for the period containing date.
// @Tags reports
// @Produce json
// @Param period query string false "Reporting period" default(MONTHLY)
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeVsExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/income-vs-expense [get]
func (h *reportingHandler) getIncomeVsExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.reportingService.IncomeVsExpense(c.Request.Context(), userID, params.Period, params.Date)
	if err != nil {
		respondError(c, err, "Failed to generate income vs expense report")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeVsExpenseResponse(report))
}

// getBudgetVsActual godoc
// @Summary Budget versus actual
// @Description Spending per budget for the period containing date.
// @Tags reports
// @Produce json
// @Param period query string false "Budget period" default(MONTHLY)
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} dto.BudgetVsActualResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/budget-vs-actual [get]
func (h *reportingHandler) getBudgetVsActual(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.reportingService.BudgetVsActual(c.Request.Context(), userID, params.Period, params.Date)
	if err != nil {
		respondError(c, err, "Failed to generate budget vs actual report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetVsActualResponse(report))
}

// getAssetAllocation godoc
// @Summary Asset allocation
// @Description Current value of holdings grouped by asset type, platform or ticker.
// @Tags reports
// @Produce json
// @Param groupBy query string false "assetType, platform or ticker" default(assetType)
// @Success 200 {object} dto.AssetAllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/asset-allocation [get]
func (h *reportingHandler) getAssetAllocation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.AllocationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.reportingService.AssetAllocation(c.Request.Context(), userID, params.GroupBy)
	if err != nil {
		respondError(c, err, "Failed to generate asset allocation")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssetAllocationResponse(report))
}

// getGoalProgress godoc
// @Summary Goal progress
// @Tags reports
// @Produce json
// @Success 200 {array} dto.GoalProgressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/goal-progress [get]
func (h *reportingHandler) getGoalProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.GoalProgress(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate goal progress")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalProgressResponse(rows))
}

// getGoalConflicts godoc
// @Summary Goal conflicts
// @Description Compares required monthly contributions against monthly income.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.GoalConflictResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/goal-conflicts [get]
func (h *reportingHandler) getGoalConflicts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	report, err := h.goalService.CheckGoalConflicts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to check goal conflicts")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalConflictResponse(report))
}

// getRecurring godoc
// @Summary Recurring transactions
// @Description Groups of transactions that repeat at a regular interval.
// @Tags reports
// @Produce json
// @Success 200 {array} dto.RecurringGroupResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/recurring [get]
func (h *reportingHandler) getRecurring(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	groups, err := h.reportingService.DetectRecurringTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to detect recurring transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringResponse(groups))
}
