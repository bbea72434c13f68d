package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/service"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock TeacherService ──

type mockTeacherService struct {
	getResult   *dto.TeacherResponse
	getErr      error
	listResult  []dto.TeacherResponse
	listErr     error
	createErr   error
	loginResult *dto.TokenResponse
	loginErr    error
	logoutErr   error
	logoutJTI   string
}

func (m *mockTeacherService) GetByID(_ context.Context, _ string) (*dto.TeacherResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockTeacherService) List(_ context.Context) ([]dto.TeacherResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockTeacherService) Create(_ context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.TeacherResponse{ID: "t-new", FirstName: req.FirstName, LastName: req.LastName}, nil
}
func (m *mockTeacherService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockTeacherService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockTeacherService) EnsureAdmin(_ context.Context, _, _ string) error { return nil }

// ── Mock LabService ──

type mockLabService struct {
	listResult []dto.LabResponse
	listErr    error
	err        error
	callerID   string
	deletedID  string
}

func (m *mockLabService) List(_ context.Context) ([]dto.LabResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockLabService) GetByID(_ context.Context, id string) (*dto.LabResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.LabResponse{ID: id}, nil
}
func (m *mockLabService) Create(_ context.Context, req *dto.LabRequest, callerID string) (*dto.LabResponse, error) {
	m.callerID = callerID
	if m.err != nil {
		return nil, m.err
	}
	return &dto.LabResponse{ID: "lab-new", Name: req.Name, Room: req.Room, ComputerSets: req.ComputerSets}, nil
}
func (m *mockLabService) Update(_ context.Context, id string, req *dto.LabRequest, callerID string) (*dto.LabResponse, error) {
	m.callerID = callerID
	if m.err != nil {
		return nil, m.err
	}
	return &dto.LabResponse{ID: id, Name: req.Name, Room: req.Room}, nil
}
func (m *mockLabService) Delete(_ context.Context, id string, _ string) error {
	m.deletedID = id
	return m.err
}

// ── Mock AcadsService ──

type mockAcadsService struct {
	courses  []dto.CourseResponse
	subjects []dto.SubjectResponse
	err      error
}

func (m *mockAcadsService) ListCourses(_ context.Context) ([]dto.CourseResponse, error) {
	return m.courses, m.err
}
func (m *mockAcadsService) CreateCourse(_ context.Context, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CourseResponse{ID: "c1", Course: req.Course}, nil
}
func (m *mockAcadsService) ListSubjects(_ context.Context) ([]dto.SubjectResponse, error) {
	return m.subjects, m.err
}
func (m *mockAcadsService) CreateSubject(_ context.Context, req *dto.SubjectRequest) (*dto.SubjectResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dto.SubjectResponse{ID: "s1", Subject: req.Subject}, nil
}

// ── Mock ScheduleService ──

type mockScheduleService struct {
	listResult []dto.ScheduleEventPayload
	listErr    error
	err        error
	deletedID  string
}

func (m *mockScheduleService) List(_ context.Context) ([]dto.ScheduleEventPayload, error) {
	return m.listResult, m.listErr
}
func (m *mockScheduleService) Create(_ context.Context, req *dto.ScheduleEventPayload, _ string) (*dto.ScheduleEventPayload, error) {
	if m.err != nil {
		return nil, m.err
	}
	return req, nil
}
func (m *mockScheduleService) Update(_ context.Context, req *dto.ScheduleEventPayload, _ string) (*dto.ScheduleEventPayload, error) {
	if m.err != nil {
		return nil, m.err
	}
	return req, nil
}
func (m *mockScheduleService) Delete(_ context.Context, id string, _ string) error {
	m.deletedID = id
	return m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	ics      []byte
	filename string
	err      error
}

func (m *mockExportService) ExportXLSX(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportICS(_ context.Context) ([]byte, string, error) {
	return m.ics, m.filename, m.err
}

// ── Mock ImportService ──

type mockImportService struct {
	got    *dto.ICSImportRequest
	result *dto.ICSImportResult
	err    error
}

func (m *mockImportService) ImportICS(_ context.Context, req *dto.ICSImportRequest, _ string) (*dto.ICSImportResult, error) {
	m.got = req
	return m.result, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func withAuth(c *gin.Context) {
	c.Set(CtxTeacherID, "test-teacher-id")
	c.Set(CtxRole, "admin")
	c.Set(CtxTokenJTI, "test-jti")
	c.Set(CtxTokenExp, time.Now().Add(15*time.Minute))
	c.Next()
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func sampleEvent() dto.ScheduleEventPayload {
	return dto.ScheduleEventPayload{
		EventID:     "evt-1",
		Title:       "Programming 1",
		Start:       "2024-01-01T08:00:00.000Z",
		End:         "2024-01-01T09:00:00.000Z",
		TeacherName: "Ada Lovelace",
		Subject:     "Programming 1",
		Course:      "BSIT",
		Section:     "1A",
		ComLab:      "Lab A",
	}
}

// ═══════════════════════════════════════════════════════════
// TeacherHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTeacherHandler_GetTeacher_WrapsEnvelope(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{
		getResult: &dto.TeacherResponse{ID: "t1", FirstName: "Ada", LastName: "Lovelace"},
	})
	r := gin.New()
	r.GET("/teacher/getSpecificTeacher/:id", h.GetTeacher)

	w := serve(r, http.MethodGet, "/teacher/getSpecificTeacher/t1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data dto.TeacherEnvelope `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ada", body.Data.Teacher.FirstName)
	assert.Equal(t, "Lovelace", body.Data.Teacher.LastName)
}

func TestTeacherHandler_GetTeacher_NotFound(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{getErr: service.ErrTeacherNotFound})
	r := gin.New()
	r.GET("/teacher/getSpecificTeacher/:id", h.GetTeacher)

	w := serve(r, http.MethodGet, "/teacher/getSpecificTeacher/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 11001, parseResponse(w).Code)
}

func TestTeacherHandler_ListTeachers_Error(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{listErr: errors.New("db down")})
	r := gin.New()
	r.GET("/teacher/getTeachers", h.ListTeachers)

	w := serve(r, http.MethodGet, "/teacher/getTeachers", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTeacherHandler_Login(t *testing.T) {
	tests := []struct {
		name     string
		mock     *mockTeacherService
		body     io.Reader
		wantCode int
	}{
		{
			name:     "success",
			mock:     &mockTeacherService{loginResult: &dto.TokenResponse{AccessToken: "tok", ExpiresIn: 60}},
			body:     jsonBody(dto.LoginRequest{Email: "ada@school.edu", Password: "secret1"}),
			wantCode: http.StatusOK,
		},
		{
			name:     "bad json",
			mock:     &mockTeacherService{},
			body:     bytes.NewReader([]byte("nope")),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid credentials",
			mock:     &mockTeacherService{loginErr: service.ErrInvalidCredentials},
			body:     jsonBody(dto.LoginRequest{Email: "ada@school.edu", Password: "wrong12"}),
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTeacherHandler(tt.mock)
			r := gin.New()
			r.POST("/teacher/login", h.Login)

			w := serve(r, http.MethodPost, "/teacher/login", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestTeacherHandler_Logout(t *testing.T) {
	mock := &mockTeacherService{}
	h := NewTeacherHandler(mock)
	r := gin.New()
	r.POST("/teacher/logout", withAuth, h.Logout)

	w := serve(r, http.MethodPost, "/teacher/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-jti", mock.logoutJTI, "token id should be revoked")
}

func TestTeacherHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{})
	r := gin.New()
	r.POST("/teacher/logout", h.Logout)

	w := serve(r, http.MethodPost, "/teacher/logout", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherHandler_CreateTeacher_Conflict(t *testing.T) {
	h := NewTeacherHandler(&mockTeacherService{createErr: service.ErrTeacherExists})
	r := gin.New()
	r.POST("/teacher/addTeacher", h.CreateTeacher)

	w := serve(r, http.MethodPost, "/teacher/addTeacher", jsonBody(dto.CreateTeacherRequest{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@school.edu", Password: "secret1",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
}

// ═══════════════════════════════════════════════════════════
// LabHandler Tests
// ═══════════════════════════════════════════════════════════

func TestLabHandler_ListLabs_WrapsCom(t *testing.T) {
	h := NewLabHandler(&mockLabService{listResult: []dto.LabResponse{{ID: "l1", Name: "Lab A", Room: "101"}}})
	r := gin.New()
	r.GET("/computer/getList", h.ListLabs)

	w := serve(r, http.MethodGet, "/computer/getList", nil)

	var body struct {
		Data dto.LabListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Com, 1)
	assert.Equal(t, "Lab A", body.Data.Com[0].Name)
}

func TestLabHandler_AddLab(t *testing.T) {
	mock := &mockLabService{}
	h := NewLabHandler(mock)
	r := gin.New()
	r.POST("/computer/addCom", withAuth, h.AddLab)

	w := serve(r, http.MethodPost, "/computer/addCom", jsonBody(dto.LabRequest{Name: "Lab A", Room: "101", ComputerSets: 30}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "test-teacher-id", mock.callerID, "caller id should be forwarded")
}

func TestLabHandler_AddLab_MissingRoom(t *testing.T) {
	h := NewLabHandler(&mockLabService{})
	r := gin.New()
	r.POST("/computer/addCom", h.AddLab)

	w := serve(r, http.MethodPost, "/computer/addCom", jsonBody(map[string]string{"name": "Lab A"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, parseResponse(w).Details, "expected validation details")
}

func TestLabHandler_EditLab_NotFound(t *testing.T) {
	h := NewLabHandler(&mockLabService{err: service.ErrLabNotFound})
	r := gin.New()
	r.POST("/computer/editCom/:id", h.EditLab)

	w := serve(r, http.MethodPost, "/computer/editCom/missing", jsonBody(dto.LabRequest{Name: "Lab A", Room: "102"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLabHandler_DeleteLab(t *testing.T) {
	mock := &mockLabService{}
	h := NewLabHandler(mock)
	r := gin.New()
	r.DELETE("/computer/deleteCom/:id", h.DeleteLab)

	w := serve(r, http.MethodDelete, "/computer/deleteCom/l1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "l1", mock.deletedID)
}

// ═══════════════════════════════════════════════════════════
// AcadsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAcadsHandler_ListCourses(t *testing.T) {
	h := NewAcadsHandler(&mockAcadsService{courses: []dto.CourseResponse{{ID: "c1", Course: "BSIT"}}})
	r := gin.New()
	r.GET("/acads/getCourses", h.ListCourses)

	w := serve(r, http.MethodGet, "/acads/getCourses", nil)

	var body struct {
		Data []dto.CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "BSIT", body.Data[0].Course)
}

func TestAcadsHandler_AddSubject_Duplicate(t *testing.T) {
	h := NewAcadsHandler(&mockAcadsService{err: service.ErrSubjectExists})
	r := gin.New()
	r.POST("/acads/addSubject", h.AddSubject)

	w := serve(r, http.MethodPost, "/acads/addSubject", jsonBody(dto.SubjectRequest{Subject: "Programming 1"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 13002, parseResponse(w).Code)
}

// ═══════════════════════════════════════════════════════════
// ScheduleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestScheduleHandler_AddEvent(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate id", service.ErrEventExists, http.StatusConflict},
		{"bad range", service.ErrInvalidEventTime, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewScheduleHandler(&mockScheduleService{err: tt.err})
			r := gin.New()
			r.POST("/schedule/addSchedule", h.AddEvent)

			w := serve(r, http.MethodPost, "/schedule/addSchedule", jsonBody(sampleEvent()))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestScheduleHandler_AddEvent_MissingFields(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{})
	r := gin.New()
	r.POST("/schedule/addSchedule", h.AddEvent)

	ev := sampleEvent()
	ev.ComLab = ""
	w := serve(r, http.MethodPost, "/schedule/addSchedule", jsonBody(ev))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_UpdateEvent_NotFound(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{err: service.ErrEventNotFound})
	r := gin.New()
	r.PUT("/schedule/updateSched", h.UpdateEvent)

	w := serve(r, http.MethodPut, "/schedule/updateSched", jsonBody(sampleEvent()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleHandler_DeleteEvent(t *testing.T) {
	mock := &mockScheduleService{}
	h := NewScheduleHandler(mock)
	r := gin.New()
	r.DELETE("/schedule/deleteSched/:id", h.DeleteEvent)

	w := serve(r, http.MethodDelete, "/schedule/deleteSched/evt-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "evt-1", mock.deletedID)
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportXLSX(t *testing.T) {
	h := NewExportHandler(&mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "schedule.xlsx"})
	r := gin.New()
	r.GET("/schedule/export.xlsx", h.ExportXLSX)

	w := serve(r, http.MethodGet, "/schedule/export.xlsx", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename*=UTF-8''schedule.xlsx", w.Header().Get("Content-Disposition"))
}

func TestExportHandler_ExportICS_NoEvents(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoEvents})
	r := gin.New()
	r.GET("/schedule/export.ics", h.ExportICS)

	w := serve(r, http.MethodGet, "/schedule/export.ics", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ═══════════════════════════════════════════════════════════
// ImportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestImportHandler_ImportICS(t *testing.T) {
	mock := &mockImportService{result: &dto.ICSImportResult{
		Imported: []string{"evt-1"},
		Skipped:  []dto.ICSImportSkip{{UID: "evt-2", Reason: "event id already used"}},
	}}
	h := NewImportHandler(mock)
	r := gin.New()
	r.POST("/schedule/import.ics", withAuth, h.ImportICS)

	w := serve(r, http.MethodPost, "/schedule/import.ics", jsonBody(dto.ICSImportRequest{Calendar: "BEGIN:VCALENDAR", ComLab: "Lab A"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, mock.got, "request not passed through")
	assert.Equal(t, "Lab A", mock.got.ComLab)

	var body struct {
		Data dto.ICSImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Imported, 1)
	assert.Len(t, body.Data.Skipped, 1)
}

func TestImportHandler_ImportICS_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		err      error
		wantCode int
		wantBiz  int
	}{
		{"missing calendar", dto.ICSImportRequest{}, nil, http.StatusBadRequest, response.CodeInvalidParams},
		{"bad calendar", dto.ICSImportRequest{Calendar: "nope"}, service.ErrInvalidCalendar, http.StatusBadRequest, 15002},
		{"db down", dto.ICSImportRequest{Calendar: "x"}, errors.New("db down"), http.StatusInternalServerError, response.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImportHandler(&mockImportService{err: tt.err})
			r := gin.New()
			r.POST("/schedule/import.ics", withAuth, h.ImportICS)

			w := serve(r, http.MethodPost, "/schedule/import.ics", jsonBody(tt.body))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantBiz, parseResponse(w).Code)
		})
	}
}
