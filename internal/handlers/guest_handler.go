package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/response"
	"github.com/shaysadin/wedding-seating-api/internal/services"
)

// GuestHandler exposes guest list and RSVP endpoints
type GuestHandler struct {
	guestService *services.GuestService
}

func NewGuestHandler(guestService *services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// CreateGuest handles POST /api/events/:event_id/guests
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req services.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	newGuest, err := h.guestService.CreateGuest(c.Param("event_id"), req)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.Created(c, "guest added", newGuest)
}

// GetGuests handles GET /api/events/:event_id/guests
func (h *GuestHandler) GetGuests(c *gin.Context) {
	guests, err := h.guestService.GetGuestsByEvent(c.Param("event_id"))
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "", guests)
}

// UpdateRSVP handles PUT /api/guests/:guest_id/rsvp
func (h *GuestHandler) UpdateRSVP(c *gin.Context) {
	var req services.UpdateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.guestService.UpdateRSVP(c.Param("guest_id"), req)
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "RSVP updated", updated)
}
