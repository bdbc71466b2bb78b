package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type aiHandler struct {
	aiService portssvc.AISvc
}

func newAIHandler(as portssvc.AISvc) *aiHandler {
	return &aiHandler{aiService: as}
}

func registerAIRoutes(rg *gin.RouterGroup, aiService portssvc.AISvc) {
	h := newAIHandler(aiService)

	ai := rg.Group("/ai")
	{
		ai.POST("/ask", h.ask)
		ai.GET("/budget-advice", h.budgetAdvice)
		ai.POST("/budget/chat", h.budgetChat)
		ai.POST("/goal/resolve", h.resolveGoalConflict)
	}
}

// ask godoc
// @Summary Ask about transactions
// @Description Answers a question using the user's recent transactions as context.
// @Tags ai
// @Accept json
// @Produce json
// @Param question body dto.AskRequest true "Question"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /ai/ask [post]
func (h *aiHandler) ask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	answer, err := h.aiService.AskTransactions(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondError(c, err, "Failed to answer question")
		return
	}
	c.JSON(http.StatusOK, dto.AskResponse{Answer: answer})
}

// budgetAdvice godoc
// @Summary Budget advice
// @Description Reviews the current month against budgets and goals and returns advice.
// @Tags ai
// @Produce json
// @Success 200 {object} dto.BudgetAdviceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /ai/budget-advice [get]
func (h *aiHandler) budgetAdvice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	advice, err := h.aiService.BudgetAdvice(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to generate budget advice")
		return
	}
	c.JSON(http.StatusOK, advice)
}

// budgetChat godoc
// @Summary Chat with the budget advisor
// @Description Answers a follow-up question from recent transactions and budgets, keeping the earlier turns.
// @Tags ai
// @Accept json
// @Produce json
// @Param message body dto.BudgetChatRequest true "Question and history"
// @Success 200 {object} dto.AskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /ai/budget/chat [post]
func (h *aiHandler) budgetChat(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.BudgetChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	answer, err := h.aiService.ChatBudgetAdvisor(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to answer budget question")
		return
	}
	c.JSON(http.StatusOK, dto.AskResponse{Answer: answer})
}

// resolveGoalConflict godoc
// @Summary Resolve a goal conflict
// @Description Discusses a new goal that does not fit the user's income and may propose a new amount and date.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ResolveGoalConflictRequest true "Conflicting goal, message and history"
// @Success 200 {object} dto.ResolveGoalConflictResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /ai/goal/resolve [post]
func (h *aiHandler) resolveGoalConflict(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ResolveGoalConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.aiService.ResolveGoalConflict(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to resolve goal conflict")
		return
	}
	c.JSON(http.StatusOK, resp)
}
