// Package console holds the admin views the CLI drives. Every view keeps
// its list as an image of the last successful fetch and refetches after
// each mutation.
package console

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/scheduler"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/session"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/table"
)

var ErrLabNotFound = errors.New("computer lab not found")

// API is the REST surface the views use. *client.Client implements it.
type API interface {
	scheduler.API
	session.Fetcher

	AddTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	AddLab(ctx context.Context, req *dto.LabRequest) error
	EditLab(ctx context.Context, id string, req *dto.LabRequest) error
	DeleteLab(ctx context.Context, id string) error
	AddCourse(ctx context.Context, name string) error
	AddSubject(ctx context.Context, name string) error
	ExportXLSX(ctx context.Context) ([]byte, error)
	ExportICS(ctx context.Context) ([]byte, error)
	ImportICS(ctx context.Context, req *dto.ICSImportRequest) (*dto.ICSImportResult, error)
}

// App ties the API client, session and notifications together.
type App struct {
	API      API
	Session  *session.Session
	Notifier table.Notifier
	Logger   *zap.Logger
	Validate *form.Validator
	// PageSize of every grid; zero means table.DefaultPageSize.
	PageSize int
}

// NewApp wires an App. sess may be nil for commands that do not need the
// signed-in teacher.
func NewApp(api API, sess *session.Session, notifier table.Notifier, logger *zap.Logger) *App {
	return &App{
		API:      api,
		Session:  sess,
		Notifier: notifier,
		Logger:   logger,
		Validate: form.New(),
	}
}

// Context attaches the session's current view to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	if a.Session == nil {
		return ctx
	}
	return session.NewContext(ctx, a.Session.View())
}

func (a *App) logger(view string) *zap.Logger {
	return a.Logger.With(zap.String("view", view))
}
