package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

// ImportHandler calendar uploads.
type ImportHandler struct {
	importSvc service.ImportService
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportICS POST /api/schedule/import.ics
//
// Partial imports still answer 200; the body lists what was skipped.
func (h *ImportHandler) ImportICS(c *gin.Context) {
	var req dto.ICSImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "invalid parameters", err.Error())
		return
	}

	result, err := h.importSvc.ImportICS(c.Request.Context(), &req, CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCalendar):
			response.ErrorWithDetails(c, http.StatusBadRequest, 15002, "invalid iCalendar document", err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}
