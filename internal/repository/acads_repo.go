package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

// CourseRepository course reference data.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	List(ctx context.Context) ([]model.Course, error)
}

// SubjectRepository subject reference data.
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	List(ctx context.Context) ([]model.Subject, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo creates the GORM CourseRepository.
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	err := r.db.WithContext(ctx).Create(course).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).Order("name ASC").Find(&courses).Error
	return courses, err
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo creates the GORM SubjectRepository.
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	err := r.db.WithContext(ctx).Create(subject).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error
	return subjects, err
}
