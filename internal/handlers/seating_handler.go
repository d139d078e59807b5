package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shaysadin/wedding-seating-api/internal/domain/seating"
	"github.com/shaysadin/wedding-seating-api/internal/export"
	"github.com/shaysadin/wedding-seating-api/internal/response"
	"github.com/shaysadin/wedding-seating-api/internal/services"
)

// SeatingHandler exposes the seating auto-arrangement endpoints
type SeatingHandler struct {
	seatingService *services.SeatingService
	eventService   *services.EventService
	guestService   *services.GuestService
}

func NewSeatingHandler(seatingService *services.SeatingService, eventService *services.EventService, guestService *services.GuestService) *SeatingHandler {
	return &SeatingHandler{
		seatingService: seatingService,
		eventService:   eventService,
		guestService:   guestService,
	}
}

// AutoArrange handles POST /api/events/:event_id/seating/auto-arrange
func (h *SeatingHandler) AutoArrange(c *gin.Context) {
	var req services.AutoArrangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.seatingService.AutoArrange(c.Request.Context(), c.Param("event_id"), req)
	if err != nil {
		h.allocationError(c, err)
		return
	}

	response.OK(c, arrangementNotice(result), result)
}

// AutoArrangeConfigs handles POST /api/events/:event_id/seating/auto-arrange-configs
func (h *SeatingHandler) AutoArrangeConfigs(c *gin.Context) {
	var req services.AutoArrangeConfigsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.seatingService.AutoArrangeConfigs(c.Request.Context(), c.Param("event_id"), req)
	if err != nil {
		h.allocationError(c, err)
		return
	}

	response.OK(c, arrangementNotice(result), result)
}

// GetTables handles GET /api/events/:event_id/tables
func (h *SeatingHandler) GetTables(c *gin.Context) {
	tables, err := h.seatingService.GetTables(c.Param("event_id"))
	if err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "", tables)
}

// RegenerateSeats handles POST /api/tables/:table_id/seats/regenerate
func (h *SeatingHandler) RegenerateSeats(c *gin.Context) {
	t, err := h.seatingService.RegenerateSeats(c.Param("table_id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "seats regenerated", t)
}

type AssignGuestRequest struct {
	GuestID    string `json:"guest_id" binding:"required"`
	SeatNumber *int   `json:"seat_number"`
}

// AssignGuest handles POST /api/tables/:table_id/assignments
func (h *SeatingHandler) AssignGuest(c *gin.Context) {
	var req AssignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.seatingService.AssignGuest(c.Param("table_id"), req.GuestID, req.SeatNumber); err != nil {
		if strings.Contains(err.Error(), "not found") {
			response.NotFoundError(c, err.Error())
			return
		}
		response.BadRequestError(c, err.Error())
		return
	}

	response.OK(c, "guest assigned", nil)
}

// ExportSeatingChart handles GET /api/events/:event_id/tables/export
func (h *SeatingHandler) ExportSeatingChart(c *gin.Context) {
	eventID := c.Param("event_id")

	eventObj, err := h.eventService.GetEventByID(eventID)
	if err != nil {
		response.NotFoundError(c, "event not found")
		return
	}

	tables, err := h.seatingService.GetTables(eventID)
	if err != nil {
		response.InternalServerError(c, "failed to load tables")
		return
	}

	guests, err := h.guestService.GetGuestsByEvent(eventID)
	if err != nil {
		response.InternalServerError(c, "failed to load guests")
		return
	}

	buf, filename, err := export.SeatingChart(eventObj.Name, tables, guests)
	if err != nil {
		if errors.Is(err, export.ErrNoTables) {
			response.BadRequestError(c, err.Error())
			return
		}
		response.InternalServerError(c, "failed to generate export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// allocationError maps engine errors to the response taxonomy: an empty or
// fully-seated candidate pool is a client error and a no-op; anything else
// means the transaction failed and rolled back.
func (h *SeatingHandler) allocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, seating.ErrNoGuestsMatched),
		errors.Is(err, seating.ErrNoTableConfigs),
		errors.Is(err, services.ErrAllGuestsSeated):
		response.BadRequestError(c, err.Error())
	case strings.HasPrefix(err.Error(), "failed to"):
		response.InternalServerError(c, err.Error())
	default:
		response.BadRequestError(c, err.Error())
	}
}

// arrangementNotice surfaces a partial-success notice; remaining unseated
// guests are reported in the success payload, never as an error.
func arrangementNotice(result *seating.Result) string {
	if result.RemainingUnseated > 0 {
		return fmt.Sprintf("arrangement complete, %d guest(s) could not be seated", result.RemainingUnseated)
	}
	return "arrangement complete"
}
