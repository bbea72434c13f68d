package service

import (
	"context"
	"errors"
	"time"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository/memory"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
)

// ── test helpers ──

var errDBDown = errors.New("db down")

func newTestRepo() *repository.Repository {
	return memory.NewRepository()
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 15 * time.Minute,
	})
}

// brokenLabRepo fails every call.
type brokenLabRepo struct{}

func (brokenLabRepo) Create(context.Context, *model.ComputerLab) error { return errDBDown }
func (brokenLabRepo) GetByID(context.Context, string) (*model.ComputerLab, error) {
	return nil, errDBDown
}
func (brokenLabRepo) List(context.Context) ([]model.ComputerLab, error) { return nil, errDBDown }
func (brokenLabRepo) Update(context.Context, *model.ComputerLab) error  { return errDBDown }
func (brokenLabRepo) Delete(context.Context, string, string) error      { return errDBDown }

// mockBlacklist records revoked token ids.
type mockBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, m.err
}
