package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
)

var (
	ErrLabNotFound = errors.New("computer lab not found")
)

// LabService computer lab inventory.
type LabService interface {
	List(ctx context.Context) ([]dto.LabResponse, error)
	GetByID(ctx context.Context, id string) (*dto.LabResponse, error)
	Create(ctx context.Context, req *dto.LabRequest, callerID string) (*dto.LabResponse, error)
	Update(ctx context.Context, id string, req *dto.LabRequest, callerID string) (*dto.LabResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type labService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLabService creates a LabService.
func NewLabService(repo *repository.Repository, logger *zap.Logger) LabService {
	return &labService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *labService) List(ctx context.Context) ([]dto.LabResponse, error) {
	labs, err := s.repo.Lab.List(ctx)
	if err != nil {
		s.logger.Error("list labs failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LabResponse, 0, len(labs))
	for i := range labs {
		result = append(result, *toLabResponse(&labs[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *labService) GetByID(ctx context.Context, id string) (*dto.LabResponse, error) {
	lab, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLabResponse(lab), nil
}

// ────────────────────── Create ──────────────────────

func (s *labService) Create(ctx context.Context, req *dto.LabRequest, callerID string) (*dto.LabResponse, error) {
	lab := &model.ComputerLab{
		Name:         strings.TrimSpace(req.Name),
		Room:         strings.TrimSpace(req.Room),
		ComputerSets: req.ComputerSets,
	}
	lab.CreatedBy = auditID(callerID)
	lab.UpdatedBy = auditID(callerID)

	if err := s.repo.Lab.Create(ctx, lab); err != nil {
		s.logger.Error("create lab failed", zap.Error(err))
		return nil, err
	}

	return toLabResponse(lab), nil
}

// ────────────────────── Update ──────────────────────

func (s *labService) Update(ctx context.Context, id string, req *dto.LabRequest, callerID string) (*dto.LabResponse, error) {
	lab, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	lab.Name = strings.TrimSpace(req.Name)
	lab.Room = strings.TrimSpace(req.Room)
	lab.ComputerSets = req.ComputerSets
	lab.UpdatedBy = auditID(callerID)

	if err := s.repo.Lab.Update(ctx, lab); err != nil {
		s.logger.Error("update lab failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toLabResponse(lab), nil
}

// ────────────────────── Delete ──────────────────────

func (s *labService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Lab.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete lab failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *labService) load(ctx context.Context, id string) (*model.ComputerLab, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrLabNotFound
	}
	lab, err := s.repo.Lab.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabNotFound
		}
		s.logger.Error("get lab failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return lab, nil
}

func toLabResponse(lab *model.ComputerLab) *dto.LabResponse {
	return &dto.LabResponse{
		ID:           lab.LabID,
		Name:         lab.Name,
		Room:         lab.Room,
		ComputerSets: lab.ComputerSets,
	}
}

// auditID turns an empty caller into a NULL audit column.
func auditID(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}
