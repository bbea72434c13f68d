package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

var (
	ErrCourseExists  = errors.New("course already exists")
	ErrSubjectExists = errors.New("subject already exists")
)

// AcadsService course and subject reference data.
type AcadsService interface {
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error)
}

type acadsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAcadsService creates an AcadsService.
func NewAcadsService(repo *repository.Repository, logger *zap.Logger) AcadsService {
	return &acadsService{repo: repo, logger: logger}
}

func (s *acadsService) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, dto.CourseResponse{ID: c.CourseID, Course: c.Name})
	}
	return result, nil
}

func (s *acadsService) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course := &model.Course{Name: strings.TrimSpace(req.Course)}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrCourseExists
		}
		s.logger.Error("create course failed", zap.Error(err))
		return nil, err
	}
	return &dto.CourseResponse{ID: course.CourseID, Course: course.Name}, nil
}

func (s *acadsService) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("list subjects failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		result = append(result, dto.SubjectResponse{ID: sub.SubjectID, Subject: sub.Name})
	}
	return result, nil
}

func (s *acadsService) CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	subject := &model.Subject{Name: strings.TrimSpace(req.Subject)}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrSubjectExists
		}
		s.logger.Error("create subject failed", zap.Error(err))
		return nil, err
	}
	return &dto.SubjectResponse{ID: subject.SubjectID, Subject: subject.Name}, nil
}
