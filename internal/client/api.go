package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
)

// ────────────────────── Teachers ──────────────────────

// GetTeacher GET /teacher/getSpecificTeacher/:id
func (c *Client) GetTeacher(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	path := "/teacher/getSpecificTeacher/" + url.PathEscape(id)
	var env dto.TeacherEnvelope
	if err := c.Get(ctx, path, &env); err != nil {
		return nil, err
	}
	if err := c.check(path, &env.Teacher); err != nil {
		return nil, err
	}
	return &env.Teacher, nil
}

// ListTeachers GET /teacher/getTeachers
func (c *Client) ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error) {
	const path = "/teacher/getTeachers"
	var out []dto.TeacherResponse
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := c.check(path, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddTeacher POST /teacher/addTeacher
func (c *Client) AddTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	var out dto.TeacherResponse
	if err := c.Post(ctx, "/teacher/addTeacher", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login POST /teacher/login. The token is not stored; call SetToken.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.Post(ctx, "/teacher/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout POST /teacher/logout
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/teacher/logout", nil, nil)
}

// ────────────────────── Computer labs ──────────────────────

// ListLabs GET /computer/getList, unwrapping {com: [...]}.
func (c *Client) ListLabs(ctx context.Context) ([]dto.LabResponse, error) {
	const path = "/computer/getList"
	var out dto.LabListResponse
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out.Com {
		if err := c.check(path, &out.Com[i]); err != nil {
			return nil, err
		}
	}
	return out.Com, nil
}

// AddLab POST /computer/addCom
func (c *Client) AddLab(ctx context.Context, req *dto.LabRequest) error {
	return c.Post(ctx, "/computer/addCom", req, nil)
}

// EditLab POST /computer/editCom/:id
func (c *Client) EditLab(ctx context.Context, id string, req *dto.LabRequest) error {
	return c.Post(ctx, "/computer/editCom/"+url.PathEscape(id), req, nil)
}

// DeleteLab DELETE /computer/deleteCom/:id
func (c *Client) DeleteLab(ctx context.Context, id string) error {
	return c.Delete(ctx, "/computer/deleteCom/"+url.PathEscape(id), nil)
}

// ────────────────────── Courses & subjects ──────────────────────

// ListCourses GET /acads/getCourses
func (c *Client) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	const path = "/acads/getCourses"
	var out []dto.CourseResponse
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := c.check(path, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddCourse POST /acads/addCourse
func (c *Client) AddCourse(ctx context.Context, name string) error {
	return c.Post(ctx, "/acads/addCourse", dto.CourseRequest{Course: name}, nil)
}

// ListSubjects GET /acads/getSubjects
func (c *Client) ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error) {
	const path = "/acads/getSubjects"
	var out []dto.SubjectResponse
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if err := c.check(path, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AddSubject POST /acads/addSubject
func (c *Client) AddSubject(ctx context.Context, name string) error {
	return c.Post(ctx, "/acads/addSubject", dto.SubjectRequest{Subject: name}, nil)
}

// ────────────────────── Schedule ──────────────────────

// ListEvents GET /schedule/getSched. One event with an unparseable or
// inverted time range fails the whole fetch.
func (c *Client) ListEvents(ctx context.Context) ([]dto.ScheduleEventPayload, error) {
	const path = "/schedule/getSched"
	var out []dto.ScheduleEventPayload
	if err := c.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if _, _, err := out[i].Times(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, path, err)
		}
	}
	return out, nil
}

// AddEvent POST /schedule/addSchedule. The response body is ignored.
func (c *Client) AddEvent(ctx context.Context, ev *dto.ScheduleEventPayload) error {
	return c.Post(ctx, "/schedule/addSchedule", ev, nil)
}

// UpdateEvent PUT /schedule/updateSched
func (c *Client) UpdateEvent(ctx context.Context, ev *dto.ScheduleEventPayload) error {
	return c.Put(ctx, "/schedule/updateSched", ev, nil)
}

// DeleteEvent DELETE /schedule/deleteSched/:id
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.Delete(ctx, "/schedule/deleteSched/"+url.PathEscape(id), nil)
}

// ExportXLSX downloads the workbook.
func (c *Client) ExportXLSX(ctx context.Context) ([]byte, error) {
	return c.Download(ctx, "/schedule/export.xlsx")
}

// ExportICS downloads the calendar feed.
func (c *Client) ExportICS(ctx context.Context) ([]byte, error) {
	return c.Download(ctx, "/schedule/export.ics")
}

// ImportICS POST /schedule/import.ics
func (c *Client) ImportICS(ctx context.Context, req *dto.ICSImportRequest) (*dto.ICSImportResult, error) {
	var out dto.ICSImportResult
	if err := c.Post(ctx, "/schedule/import.ics", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
