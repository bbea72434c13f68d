package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

// ScheduleHandler schedule events.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListEvents GET /api/schedule/getSched
func (h *ScheduleHandler) ListEvents(c *gin.Context) {
	events, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, events)
}

// AddEvent POST /api/schedule/addSchedule
func (h *ScheduleHandler) AddEvent(c *gin.Context) {
	var req dto.ScheduleEventPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "invalid parameters", err.Error())
		return
	}

	event, err := h.scheduleSvc.Create(c.Request.Context(), &req, CallerID(c))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.Created(c, event)
}

// UpdateEvent replaces the event keyed by the body's event_id.
// PUT /api/schedule/updateSched
func (h *ScheduleHandler) UpdateEvent(c *gin.Context) {
	var req dto.ScheduleEventPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "invalid parameters", err.Error())
		return
	}

	event, err := h.scheduleSvc.Update(c.Request.Context(), &req, CallerID(c))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, event)
}

// DeleteEvent DELETE /api/schedule/deleteSched/:id
func (h *ScheduleHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, response.CodeInvalidParams, "event id is required")
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, CallerID(c)); err != nil {
		h.handleScheduleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 14001, "schedule event not found")
	case errors.Is(err, service.ErrEventExists):
		response.Conflict(c, 14002, "schedule event id already used")
	case errors.Is(err, service.ErrInvalidEventTime):
		response.BadRequest(c, 14003, "end must be after start")
	default:
		response.InternalError(c)
	}
}
