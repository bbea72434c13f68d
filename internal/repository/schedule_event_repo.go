package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

// ScheduleEventRepository schedule event data access.
type ScheduleEventRepository interface {
	Create(ctx context.Context, event *model.ScheduleEvent) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error)
	List(ctx context.Context) ([]model.ScheduleEvent, error)
	Update(ctx context.Context, event *model.ScheduleEvent) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type scheduleEventRepo struct {
	db *gorm.DB
}

// NewScheduleEventRepo creates the GORM ScheduleEventRepository.
func NewScheduleEventRepo(db *gorm.DB) ScheduleEventRepository {
	return &scheduleEventRepo{db: db}
}

func (r *scheduleEventRepo) Create(ctx context.Context, event *model.ScheduleEvent) error {
	// Unscoped: a soft-deleted row still owns its primary key.
	var n int64
	if err := r.db.WithContext(ctx).Unscoped().
		Model(&model.ScheduleEvent{}).
		Where("event_id = ?", event.EventID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return pkgerrors.ErrDuplicateKey
	}

	err := r.db.WithContext(ctx).Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *scheduleEventRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEvent, error) {
	var event model.ScheduleEvent
	err := r.db.WithContext(ctx).
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *scheduleEventRepo) List(ctx context.Context) ([]model.ScheduleEvent, error) {
	var events []model.ScheduleEvent
	err := r.db.WithContext(ctx).
		Order("start_at ASC, event_id ASC").
		Find(&events).Error
	return events, err
}

func (r *scheduleEventRepo) Update(ctx context.Context, event *model.ScheduleEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *scheduleEventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ScheduleEvent{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": nullableID(deletedBy),
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
