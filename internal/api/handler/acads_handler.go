package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

// AcadsHandler courses and subjects.
type AcadsHandler struct {
	acadsSvc service.AcadsService
}

// NewAcadsHandler creates an AcadsHandler.
func NewAcadsHandler(acadsSvc service.AcadsService) *AcadsHandler {
	return &AcadsHandler{acadsSvc: acadsSvc}
}

// ListCourses GET /api/acads/getCourses
func (h *AcadsHandler) ListCourses(c *gin.Context) {
	courses, err := h.acadsSvc.ListCourses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, courses)
}

// AddCourse POST /api/acads/addCourse
func (h *AcadsHandler) AddCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "course is required")
		return
	}

	course, err := h.acadsSvc.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleAcadsError(c, err)
		return
	}
	response.Created(c, course)
}

// ListSubjects GET /api/acads/getSubjects
func (h *AcadsHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.acadsSvc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, subjects)
}

// AddSubject POST /api/acads/addSubject
func (h *AcadsHandler) AddSubject(c *gin.Context) {
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "subject is required")
		return
	}

	subject, err := h.acadsSvc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		h.handleAcadsError(c, err)
		return
	}
	response.Created(c, subject)
}

func (h *AcadsHandler) handleAcadsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseExists):
		response.Conflict(c, 13001, "course already exists")
	case errors.Is(err, service.ErrSubjectExists):
		response.Conflict(c, 13002, "subject already exists")
	default:
		response.InternalError(c)
	}
}
