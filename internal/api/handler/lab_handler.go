package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

// LabHandler computer lab inventory.
type LabHandler struct {
	labSvc service.LabService
}

// NewLabHandler creates a LabHandler.
func NewLabHandler(labSvc service.LabService) *LabHandler {
	return &LabHandler{labSvc: labSvc}
}

// ListLabs GET /api/computer/getList
func (h *LabHandler) ListLabs(c *gin.Context) {
	labs, err := h.labSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.LabListResponse{Com: labs})
}

// AddLab POST /api/computer/addCom
func (h *LabHandler) AddLab(c *gin.Context) {
	var req dto.LabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "invalid parameters", err.Error())
		return
	}

	lab, err := h.labSvc.Create(c.Request.Context(), &req, CallerID(c))
	if err != nil {
		h.handleLabError(c, err)
		return
	}

	response.Created(c, lab)
}

// EditLab POST /api/computer/editCom/:id
func (h *LabHandler) EditLab(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, response.CodeInvalidParams, "lab id is required")
		return
	}

	var req dto.LabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "invalid parameters", err.Error())
		return
	}

	lab, err := h.labSvc.Update(c.Request.Context(), id, &req, CallerID(c))
	if err != nil {
		h.handleLabError(c, err)
		return
	}

	response.OK(c, lab)
}

// DeleteLab DELETE /api/computer/deleteCom/:id
func (h *LabHandler) DeleteLab(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, response.CodeInvalidParams, "lab id is required")
		return
	}

	if err := h.labSvc.Delete(c.Request.Context(), id, CallerID(c)); err != nil {
		h.handleLabError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *LabHandler) handleLabError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLabNotFound):
		response.NotFound(c, 12001, "computer lab not found")
	default:
		response.InternalError(c)
	}
}
