package console

import (
	"context"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/table"
)

// TeachersView is the faculty grid.
type TeachersView struct {
	app   *App
	Table *table.Table[dto.TeacherResponse]
}

func (a *App) Teachers() *TeachersView {
	return &TeachersView{
		app: a,
		Table: table.New(table.Config[dto.TeacherResponse]{
			Fetch: a.API.ListTeachers,
			Key:   func(t dto.TeacherResponse) string { return t.ID },
			Columns: []table.Column[dto.TeacherResponse]{
				{Key: "id", Title: "ID", Value: func(t dto.TeacherResponse) string { return t.ID }},
				{Key: "name", Title: "Name", Value: dto.TeacherResponse.DisplayName, Sortable: true},
				{Key: "email", Title: "Email", Value: func(t dto.TeacherResponse) string { return t.Email }, Sortable: true},
			},
			FilterColumn: "name",
			PageSize:     a.PageSize,
			Notifier:     a.Notifier,
			Logger:       a.logger("teachers"),
		}),
	}
}

// Add registers a teacher account.
func (v *TeachersView) Add(ctx context.Context, f form.TeacherForm) error {
	return v.Table.Submit(ctx, f, v.app.Validate, func(ctx context.Context) error {
		_, err := v.app.API.AddTeacher(ctx, &dto.CreateTeacherRequest{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Email:     f.Email,
			Password:  f.Password,
		})
		return err
	}, "Added successfully")
}

// CoursesView is the course list.
type CoursesView struct {
	app   *App
	Table *table.Table[dto.CourseResponse]
}

func (a *App) Courses() *CoursesView {
	return &CoursesView{
		app: a,
		Table: table.New(table.Config[dto.CourseResponse]{
			Fetch: a.API.ListCourses,
			Key:   func(c dto.CourseResponse) string { return c.ID },
			Columns: []table.Column[dto.CourseResponse]{
				{Key: "course", Title: "Course", Value: func(c dto.CourseResponse) string { return c.Course }, Sortable: true},
			},
			FilterColumn: "course",
			PageSize:     a.PageSize,
			Notifier:     a.Notifier,
			Logger:       a.logger("courses"),
		}),
	}
}

func (v *CoursesView) Add(ctx context.Context, f form.CourseForm) error {
	return v.Table.Submit(ctx, f, v.app.Validate, func(ctx context.Context) error {
		return v.app.API.AddCourse(ctx, f.Course)
	}, "Added successfully")
}

// SubjectsView is the subject list.
type SubjectsView struct {
	app   *App
	Table *table.Table[dto.SubjectResponse]
}

func (a *App) Subjects() *SubjectsView {
	return &SubjectsView{
		app: a,
		Table: table.New(table.Config[dto.SubjectResponse]{
			Fetch: a.API.ListSubjects,
			Key:   func(s dto.SubjectResponse) string { return s.ID },
			Columns: []table.Column[dto.SubjectResponse]{
				{Key: "subject", Title: "Subject", Value: func(s dto.SubjectResponse) string { return s.Subject }, Sortable: true},
			},
			FilterColumn: "subject",
			PageSize:     a.PageSize,
			Notifier:     a.Notifier,
			Logger:       a.logger("subjects"),
		}),
	}
}

func (v *SubjectsView) Add(ctx context.Context, f form.SubjectForm) error {
	return v.Table.Submit(ctx, f, v.app.Validate, func(ctx context.Context) error {
		return v.app.API.AddSubject(ctx, f.Subject)
	}, "Added successfully")
}
