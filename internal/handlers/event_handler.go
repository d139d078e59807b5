package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/domain/user"
	"github.com/shaysadin/wedding-seating-api/internal/middleware"
	"github.com/shaysadin/wedding-seating-api/internal/response"
	"github.com/shaysadin/wedding-seating-api/internal/services"
)

// EventHandler exposes wedding event endpoints
type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	newEvent, err := h.eventService.CreateEvent(req)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.Created(c, "event created", newEvent)
}

// GetAllEvents handles GET /api/events. Owners see their own events; admins
// see everything, optionally filtered by owner_id.
func (h *EventHandler) GetAllEvents(c *gin.Context) {
	owner := c.Query("owner_id")
	if c.GetString(middleware.ContextUserRole) != user.RoleAdmin {
		owner = c.GetString(middleware.ContextUserID)
	}

	if owner != "" {
		events, err := h.eventService.GetEventsByOwner(owner)
		if err != nil {
			response.BadRequestError(c, err.Error())
			return
		}
		response.OK(c, "", events)
		return
	}

	events, err := h.eventService.GetAllEvents()
	if err != nil {
		response.InternalServerError(c, "failed to retrieve events")
		return
	}

	response.OK(c, "", events)
}

// GetEvent handles GET /api/events/:event_id
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventObj, err := h.eventService.GetEventByID(c.Param("event_id"))
	if err != nil {
		response.NotFoundError(c, "event not found")
		return
	}

	response.OK(c, "", eventObj)
}

type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// UpdateEventStage handles PATCH /api/events/:event_id/stage
func (h *EventHandler) UpdateEventStage(c *gin.Context) {
	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	eventObj, err := h.eventService.UpdateEventStage(c.Param("event_id"), req.Stage)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "stage updated", eventObj)
}
