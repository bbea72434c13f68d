package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
)

// Service aggregates every service.
type Service struct {
	Teacher  TeacherService
	Lab      LabService
	Acads    AcadsService
	Schedule ScheduleService
	Export   ExportService
	Import   ImportService
}

// NewService wires the services. blacklist may be nil when Redis is down.
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	return &Service{
		Teacher:  NewTeacherService(repo, jwtMgr, blacklist, logger),
		Lab:      NewLabService(repo, logger),
		Acads:    NewAcadsService(repo, logger),
		Schedule: NewScheduleService(repo, logger),
		Export:   NewExportService(repo, loc, logger),
		Import:   NewImportService(repo, loc, logger),
	}
}
