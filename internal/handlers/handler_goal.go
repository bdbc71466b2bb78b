package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type goalHandler struct {
	goalService portssvc.GoalSvcFacade
}

func newGoalHandler(gs portssvc.GoalSvcFacade) *goalHandler {
	return &goalHandler{goalService: gs}
}

func registerGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade) {
	h := newGoalHandler(goalService)

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:goalID", h.getGoal)
		goals.PUT("/:goalID", h.updateGoal)
		goals.DELETE("/:goalID", h.deleteGoal)
		goals.POST("/:goalID/contribute", h.contribute)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal in the user's base currency.
// @Tags goals
// @Accept json
// @Produce json
// @Param goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(goal))
}

// listGoals godoc
// @Summary List goals
// @Tags goals
// @Produce json
// @Success 200 {array} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list goals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGoalResponse(goals))
}

// getGoal godoc
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Param goalID path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, c.Param("goalID"))
	if err != nil {
		respondError(c, err, "Failed to get goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// updateGoal godoc
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param goal body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("goalID"), req)
	if err != nil {
		respondError(c, err, "Failed to update goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// deleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Param goalID path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("goalID")); err != nil {
		respondError(c, err, "Failed to delete goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// contribute godoc
// @Summary Contribute to a goal
// @Description Adds an amount to the goal's saved amount. The goal completes once the target is reached.
// @Tags goals
// @Accept json
// @Produce json
// @Param goalID path string true "Goal ID"
// @Param contribution body dto.ContributeRequest true "Amount to add"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /goals/{goalID}/contribute [post]
func (h *goalHandler) contribute(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := h.goalService.ContributeToGoal(c.Request.Context(), userID, c.Param("goalID"), req.Amount)
	if err != nil {
		respondError(c, err, "Failed to contribute to goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}
