package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
)

// LabRepository computer lab data access.
type LabRepository interface {
	Create(ctx context.Context, lab *model.ComputerLab) error
	GetByID(ctx context.Context, id string) (*model.ComputerLab, error)
	List(ctx context.Context) ([]model.ComputerLab, error)
	Update(ctx context.Context, lab *model.ComputerLab) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type labRepo struct {
	db *gorm.DB
}

// NewLabRepo creates the GORM LabRepository.
func NewLabRepo(db *gorm.DB) LabRepository {
	return &labRepo{db: db}
}

func (r *labRepo) Create(ctx context.Context, lab *model.ComputerLab) error {
	return r.db.WithContext(ctx).Create(lab).Error
}

func (r *labRepo) GetByID(ctx context.Context, id string) (*model.ComputerLab, error) {
	var lab model.ComputerLab
	err := r.db.WithContext(ctx).
		Where("lab_id = ?", id).
		First(&lab).Error
	if err != nil {
		return nil, err
	}
	return &lab, nil
}

func (r *labRepo) List(ctx context.Context) ([]model.ComputerLab, error) {
	var labs []model.ComputerLab
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&labs).Error
	return labs, err
}

func (r *labRepo) Update(ctx context.Context, lab *model.ComputerLab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}

func (r *labRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.ComputerLab{}).
		Where("lab_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": nullableID(deletedBy),
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// nullableID keeps an empty caller id out of a uuid column.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
