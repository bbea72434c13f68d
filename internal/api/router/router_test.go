package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/config"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/api/handler"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository/memory"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/jwt"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/metrics"
)

func newTestServer(t *testing.T, requireToken bool) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret-0123456789",
			AccessTokenTTL: time.Hour,
			RequireToken:   requireToken,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(memory.NewRepository(), jwtMgr, nil, time.UTC, zap.NewNop())
	require.NoError(t, svc.Teacher.EnsureAdmin(context.Background(), "admin@school.edu", "admin123"))
	return Setup(cfg, handler.NewHandler(svc), jwtMgr, nil, metrics.New(), zap.NewNop())
}

func do(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/teacher/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())
	var body struct {
		Data dto.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.AccessToken
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	return loginAs(t, r, "admin@school.edu", "admin123")
}

func TestSetup_Health(t *testing.T) {
	r := newTestServer(t, true)
	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetup_MutationsNeedToken(t *testing.T) {
	r := newTestServer(t, true)

	lab := dto.LabRequest{Name: "Lab A", Room: "101"}
	require.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/computer/addCom", "", lab).Code, "without token")

	token := login(t, r)
	w := do(r, http.MethodPost, "/api/computer/addCom", token, lab)
	require.Equal(t, http.StatusCreated, w.Code, "with token: %s", w.Body.String())

	// reads stay open
	w = do(r, http.MethodGet, "/api/computer/getList", "", nil)
	assert.Contains(t, w.Body.String(), `"com":[{`)
}

func TestSetup_OpenMode(t *testing.T) {
	r := newTestServer(t, false)

	w := do(r, http.MethodPost, "/api/acads/addCourse", "", dto.CourseRequest{Course: "BSIT"})
	assert.Equal(t, http.StatusCreated, w.Code, "open mode accepts writes without a token")
}

func TestSetup_AddTeacherIsAdminOnly(t *testing.T) {
	r := newTestServer(t, true)
	token := login(t, r)

	req := dto.CreateTeacherRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.edu", Password: "secret1"}
	w := do(r, http.MethodPost, "/api/teacher/addTeacher", token, req)
	require.Equal(t, http.StatusCreated, w.Code, "admin: %s", w.Body.String())

	teacherToken := loginAs(t, r, "ada@school.edu", "secret1")

	other := dto.CreateTeacherRequest{FirstName: "Alan", LastName: "Turing", Email: "alan@school.edu", Password: "secret1"}
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodPost, "/api/teacher/addTeacher", teacherToken, other).Code)
}

func TestSetup_MetricsEndpoint(t *testing.T) {
	r := newTestServer(t, true)
	do(r, http.MethodGet, "/api/computer/getList", "", nil)

	w := do(r, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, w.Body.String(), "comlab_http_requests_total")
}
