package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
)

var (
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrTeacherExists      = errors.New("a teacher with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenBlacklist revokes tokens on logout. Backed by Redis; may be nil.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// TeacherService teacher lookups and authentication.
type TeacherService interface {
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

type teacherService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewTeacherService creates a TeacherService.
func NewTeacherService(repo *repository.Repository, jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, jwtMgr: jwtMgr, blacklist: blacklist, logger: logger}
}

// ────────────────────── GetByID ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	// Postgres rejects malformed uuids with a syntax error; treat them as absent.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrTeacherNotFound
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("get teacher failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── List ──────────────────────

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("list teachers failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleTeacher
	}

	teacher := &model.Teacher{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrTeacherExists
		}
		s.logger.Error("create teacher failed", zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── Login / Logout ──────────────────────

func (s *teacherService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	teacher, err := s.repo.Teacher.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("get teacher by email failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(teacher.TeacherID, teacher.Role)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
		Teacher:     *toTeacherResponse(teacher),
	}, nil
}

func (s *teacherService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		s.logger.Warn("token blacklist unavailable, logout is client-side only", zap.String("jti", jti))
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", jti), zap.Error(err))
		return err
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin when no teacher with that email
// exists yet. Empty credentials disable bootstrapping.
func (s *teacherService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.Create(ctx, &dto.CreateTeacherRequest{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     email,
		Password:  password,
		Role:      model.RoleAdmin,
	})
	if errors.Is(err, ErrTeacherExists) {
		return nil
	}
	if err == nil {
		s.logger.Info("bootstrap admin created", zap.String("email", email))
	}
	return err
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:        t.TeacherID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Role:      t.Role,
	}
}
