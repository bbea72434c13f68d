package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

var (
	ErrEventNotFound    = errors.New("schedule event not found")
	ErrEventExists      = errors.New("schedule event id already used")
	ErrInvalidEventTime = errors.New("invalid schedule event time range")
)

// ScheduleService schedule event CRUD. Event ids are chosen by the client.
type ScheduleService interface {
	List(ctx context.Context) ([]dto.ScheduleEventPayload, error)
	Create(ctx context.Context, req *dto.ScheduleEventPayload, callerID string) (*dto.ScheduleEventPayload, error)
	Update(ctx context.Context, req *dto.ScheduleEventPayload, callerID string) (*dto.ScheduleEventPayload, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *scheduleService) List(ctx context.Context) ([]dto.ScheduleEventPayload, error) {
	events, err := s.repo.ScheduleEvent.List(ctx)
	if err != nil {
		s.logger.Error("list schedule events failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleEventPayload, 0, len(events))
	for i := range events {
		result = append(result, toEventPayload(&events[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.ScheduleEventPayload, callerID string) (*dto.ScheduleEventPayload, error) {
	event, err := fromEventPayload(req)
	if err != nil {
		return nil, err
	}
	event.CreatedBy = auditID(callerID)
	event.UpdatedBy = auditID(callerID)

	if err := s.repo.ScheduleEvent.Create(ctx, event); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrEventExists
		}
		s.logger.Error("create schedule event failed", zap.String("event_id", req.EventID), zap.Error(err))
		return nil, err
	}

	out := toEventPayload(event)
	return &out, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, req *dto.ScheduleEventPayload, callerID string) (*dto.ScheduleEventPayload, error) {
	existing, err := s.repo.ScheduleEvent.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("get schedule event failed", zap.String("event_id", req.EventID), zap.Error(err))
		return nil, err
	}

	event, err := fromEventPayload(req)
	if err != nil {
		return nil, err
	}
	event.AuditedModel = existing.AuditedModel
	event.UpdatedBy = auditID(callerID)

	if err := s.repo.ScheduleEvent.Update(ctx, event); err != nil {
		s.logger.Error("update schedule event failed", zap.String("event_id", req.EventID), zap.Error(err))
		return nil, err
	}

	out := toEventPayload(event)
	return &out, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.ScheduleEvent.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("get schedule event failed", zap.String("event_id", id), zap.Error(err))
		return err
	}

	if err := s.repo.ScheduleEvent.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete schedule event failed", zap.String("event_id", id), zap.Error(err))
		return err
	}
	return nil
}

func fromEventPayload(p *dto.ScheduleEventPayload) (*model.ScheduleEvent, error) {
	start, end, err := p.Times()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEventTime, err)
	}
	return &model.ScheduleEvent{
		EventID:     p.EventID,
		Title:       p.Title,
		StartAt:     start.UTC(),
		EndAt:       end.UTC(),
		TeacherName: p.TeacherName,
		Subject:     p.Subject,
		Course:      p.Course,
		Section:     p.Section,
		Subtitle:    p.Subtitle,
		ComLab:      p.ComLab,
	}, nil
}

func toEventPayload(e *model.ScheduleEvent) dto.ScheduleEventPayload {
	return dto.ScheduleEventPayload{
		EventID:     e.EventID,
		Title:       e.Title,
		Start:       dto.FormatTime(e.StartAt),
		End:         dto.FormatTime(e.EndAt),
		TeacherName: e.TeacherName,
		Subject:     e.Subject,
		Course:      e.Course,
		Section:     e.Section,
		Subtitle:    e.Subtitle,
		ComLab:      e.ComLab,
	}
}
