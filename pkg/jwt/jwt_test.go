package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: ttl,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("teacher-1", "admin")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "teacher-1", claims.TeacherID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "comlab", claims.Issuer)
	assert.NotEmpty(t, claims.ID, "JTI must not be empty")
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken("teacher-1", "teacher")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Equal(t, ErrTokenExpired, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager(time.Minute)
	other := NewManager(&config.AuthConfig{JWTSecret: "another-secret-key-0123456789", AccessTokenTTL: time.Minute})

	token, _ := other.GenerateAccessToken("teacher-1", "admin")
	_, err := m.ParseToken(token)
	assert.Equal(t, ErrTokenInvalid, err)
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager(time.Minute)
	_, err := m.ParseToken("not.a.token")
	assert.Equal(t, ErrTokenInvalid, err)
}
