package handler

import "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Teacher  *TeacherHandler
	Lab      *LabHandler
	Acads    *AcadsHandler
	Schedule *ScheduleHandler
	Export   *ExportHandler
	Import   *ImportHandler
}

// NewHandler wires the handlers over the services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Teacher:  NewTeacherHandler(svc.Teacher),
		Lab:      NewLabHandler(svc.Lab),
		Acads:    NewAcadsHandler(svc.Acads),
		Schedule: NewScheduleHandler(svc.Schedule),
		Export:   NewExportHandler(svc.Export),
		Import:   NewImportHandler(svc.Import),
	}
}
