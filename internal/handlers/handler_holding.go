package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type holdingHandler struct {
	holdingService portssvc.HoldingSvcFacade
}

func newHoldingHandler(hs portssvc.HoldingSvcFacade) *holdingHandler {
	return &holdingHandler{holdingService: hs}
}

func registerHoldingRoutes(rg *gin.RouterGroup, holdingService portssvc.HoldingSvcFacade) {
	h := newHoldingHandler(holdingService)

	holdings := rg.Group("/holdings")
	{
		holdings.POST("", h.createHolding)
		holdings.GET("", h.listHoldings)
		holdings.GET("/:holdingID", h.getHolding)
		holdings.PUT("/:holdingID", h.updateHolding)
		holdings.DELETE("/:holdingID", h.deleteHolding)
	}
}

// createHolding godoc
// @Summary Create a holding
// @Description Creates an investment holding. A live price is fetched when available; failure to price does not block creation.
// @Tags holdings
// @Accept json
// @Produce json
// @Param holding body dto.CreateHoldingRequest true "Holding details"
// @Success 201 {object} dto.HoldingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /holdings [post]
func (h *holdingHandler) createHolding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	holding, err := h.holdingService.CreateHolding(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create holding")
		return
	}
	c.JSON(http.StatusCreated, dto.ToHoldingResponse(holding))
}

// listHoldings godoc
// @Summary List holdings
// @Tags holdings
// @Produce json
// @Success 200 {array} dto.HoldingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /holdings [get]
func (h *holdingHandler) listHoldings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	holdings, err := h.holdingService.ListHoldings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list holdings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHoldingResponse(holdings))
}

// getHolding godoc
// @Summary Get a holding
// @Tags holdings
// @Produce json
// @Param holdingID path string true "Holding ID"
// @Success 200 {object} dto.HoldingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /holdings/{holdingID} [get]
func (h *holdingHandler) getHolding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	holding, err := h.holdingService.GetHolding(c.Request.Context(), userID, c.Param("holdingID"))
	if err != nil {
		respondError(c, err, "Failed to get holding")
		return
	}
	c.JSON(http.StatusOK, dto.ToHoldingResponse(holding))
}

// updateHolding godoc
// @Summary Update a holding
// @Tags holdings
// @Accept json
// @Produce json
// @Param holdingID path string true "Holding ID"
// @Param holding body dto.UpdateHoldingRequest true "Fields to update"
// @Success 200 {object} dto.HoldingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /holdings/{holdingID} [put]
func (h *holdingHandler) updateHolding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	holding, err := h.holdingService.UpdateHolding(c.Request.Context(), userID, c.Param("holdingID"), req)
	if err != nil {
		respondError(c, err, "Failed to update holding")
		return
	}
	c.JSON(http.StatusOK, dto.ToHoldingResponse(holding))
}

// deleteHolding godoc
// @Summary Delete a holding
// @Tags holdings
// @Param holdingID path string true "Holding ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /holdings/{holdingID} [delete]
func (h *holdingHandler) deleteHolding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.holdingService.DeleteHolding(c.Request.Context(), userID, c.Param("holdingID")); err != nil {
		respondError(c, err, "Failed to delete holding")
		return
	}
	c.Status(http.StatusNoContent)
}
