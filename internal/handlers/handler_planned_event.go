package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type plannedEventHandler struct {
	plannedEventService portssvc.PlannedEventSvcFacade
}

func newPlannedEventHandler(ps portssvc.PlannedEventSvcFacade) *plannedEventHandler {
	return &plannedEventHandler{plannedEventService: ps}
}

func registerPlannedEventRoutes(rg *gin.RouterGroup, plannedEventService portssvc.PlannedEventSvcFacade) {
	h := newPlannedEventHandler(plannedEventService)

	events := rg.Group("/planned-events")
	{
		events.POST("", h.createPlannedEvent)
		events.GET("", h.listPlannedEvents)
		events.GET("/:eventID", h.getPlannedEvent)
		events.PUT("/:eventID", h.updatePlannedEvent)
		events.DELETE("/:eventID", h.deletePlannedEvent)
		events.POST("/:eventID/complete", h.completePlannedEvent)
		events.POST("/:eventID/undo", h.undoPlannedEvent)
	}
}

// createPlannedEvent godoc
// @Summary Create a planned event
// @Tags planned-events
// @Accept json
// @Produce json
// @Param event body dto.CreatePlannedEventRequest true "Planned event details"
// @Success 201 {object} dto.PlannedEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events [post]
func (h *plannedEventHandler) createPlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePlannedEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.plannedEventService.CreatePlannedEvent(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create planned event")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlannedEventResponse(event))
}

// listPlannedEvents godoc
// @Summary List planned events
// @Tags planned-events
// @Produce json
// @Success 200 {array} dto.PlannedEventResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events [get]
func (h *plannedEventHandler) listPlannedEvents(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	events, err := h.plannedEventService.ListPlannedEvents(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list planned events")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlannedEventResponse(events))
}

// getPlannedEvent godoc
// @Summary Get a planned event
// @Tags planned-events
// @Produce json
// @Param eventID path string true "Planned event ID"
// @Success 200 {object} dto.PlannedEventResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events/{eventID} [get]
func (h *plannedEventHandler) getPlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	event, err := h.plannedEventService.GetPlannedEvent(c.Request.Context(), userID, c.Param("eventID"))
	if err != nil {
		respondError(c, err, "Failed to get planned event")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannedEventResponse(event))
}

// updatePlannedEvent godoc
// @Summary Update a planned event
// @Tags planned-events
// @Accept json
// @Produce json
// @Param eventID path string true "Planned event ID"
// @Param event body dto.UpdatePlannedEventRequest true "Fields to update"
// @Success 200 {object} dto.PlannedEventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events/{eventID} [put]
func (h *plannedEventHandler) updatePlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePlannedEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	event, err := h.plannedEventService.UpdatePlannedEvent(c.Request.Context(), userID, c.Param("eventID"), req)
	if err != nil {
		respondError(c, err, "Failed to update planned event")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannedEventResponse(event))
}

// deletePlannedEvent godoc
// @Summary Delete a planned event
// @Tags planned-events
// @Param eventID path string true "Planned event ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events/{eventID} [delete]
func (h *plannedEventHandler) deletePlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.plannedEventService.DeletePlannedEvent(c.Request.Context(), userID, c.Param("eventID")); err != nil {
		respondError(c, err, "Failed to delete planned event")
		return
	}
	c.Status(http.StatusNoContent)
}

// completePlannedEvent godoc
// @Summary Complete a planned event
// @Description Marks the event completed and records the matching transaction atomically.
// @Tags planned-events
// @Produce json
// @Param eventID path string true "Planned event ID"
// @Success 200 {object} domain.CompletionResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already completed or concurrently updated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events/{eventID}/complete [post]
func (h *plannedEventHandler) completePlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	res, err := h.plannedEventService.CompletePlannedEvent(c.Request.Context(), userID, c.Param("eventID"))
	if err != nil {
		respondError(c, err, "Failed to complete planned event")
		return
	}
	c.JSON(http.StatusOK, res)
}

// undoPlannedEvent godoc
// @Summary Undo a planned event completion
// @Description Reopens the event and deletes the transaction its completion created.
// @Tags planned-events
// @Param eventID path string true "Planned event ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not completed or concurrently updated"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-events/{eventID}/undo [post]
func (h *plannedEventHandler) undoPlannedEvent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.plannedEventService.UndoPlannedEventCompletion(c.Request.Context(), userID, c.Param("eventID")); err != nil {
		respondError(c, err, "Failed to undo planned event completion")
		return
	}
	c.Status(http.StatusNoContent)
}
