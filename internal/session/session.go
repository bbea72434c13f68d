// Package session holds the acting teacher: the persisted id, the display
// name fetched for it, and whether that fetch is still running.
//
// Changing the id supersedes any fetch in flight. Each fetch carries the
// generation it was started under and its result is dropped unless that
// generation is still current, so a slow response for an old id can never
// overwrite the name of the new one.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
)

// Fetcher loads a teacher profile.
type Fetcher interface {
	GetTeacher(ctx context.Context, id string) (*dto.TeacherResponse, error)
}

// Session is the application-scoped identity container.
type Session struct {
	store   Store
	fetcher Fetcher
	logger  *zap.Logger

	mu          sync.Mutex
	teacherID   string
	teacherName string
	loading     bool
	gen         uint64
	cancel      context.CancelFunc
	inflight    sync.WaitGroup
}

// New restores the persisted id and, if there is one, starts fetching its
// profile. A store that cannot be read starts the session empty.
func New(store Store, fetcher Fetcher, logger *zap.Logger) *Session {
	s := &Session{store: store, fetcher: fetcher, logger: logger}

	id, err := store.Load()
	if err != nil {
		logger.Error("load persisted teacher id failed", zap.Error(err))
		id = ""
	}

	s.mu.Lock()
	s.teacherID = id
	s.startFetchLocked()
	s.mu.Unlock()

	return s
}

// SetTeacherID persists id and refetches the display name. The previous
// name is cleared right away. An empty id signs the session out.
func (s *Session) SetTeacherID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teacherID = id
	s.startFetchLocked()

	if err := s.store.Save(id); err != nil {
		s.logger.Error("persist teacher id failed", zap.String("teacher_id", id), zap.Error(err))
		return err
	}
	return nil
}

// View returns the read-only handle given to consumers.
func (s *Session) View() View {
	return View{s: s}
}

// Wait blocks until every fetch started so far has finished.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close cancels the fetch in flight, if any.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) startFetchLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.teacherName = ""

	if s.teacherID == "" {
		s.loading = false
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.loading = true
	s.inflight.Add(1)
	go s.fetch(ctx, s.gen, s.teacherID)
}

func (s *Session) fetch(ctx context.Context, gen uint64, id string) {
	defer s.inflight.Done()

	teacher, err := s.fetcher.GetTeacher(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding superseded teacher fetch", zap.String("teacher_id", id))
		return
	}
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		s.logger.Info("teacher fetch cancelled", zap.String("teacher_id", id))
	case err != nil:
		s.logger.Error("fetch teacher info failed", zap.String("teacher_id", id), zap.Error(err))
	default:
		s.teacherName = teacher.DisplayName()
	}
}

// View is a read-only handle on a Session.
type View struct {
	s *Session
}

// TeacherID is the acting teacher, "" when signed out.
func (v View) TeacherID() string {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.teacherID
}

// TeacherName is "First Last" once fetched, "" before.
func (v View) TeacherName() string {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.teacherName
}

// Loading reports whether a profile fetch is running.
func (v View) Loading() bool {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.loading
}

type viewKey struct{}

// NewContext scopes v to ctx.
func NewContext(ctx context.Context, v View) context.Context {
	return context.WithValue(ctx, viewKey{}, v)
}

// FromContext returns the View scoped to ctx.
func FromContext(ctx context.Context) (View, bool) {
	v, ok := ctx.Value(viewKey{}).(View)
	return v, ok
}

// MustFromContext is FromContext for code that can only run inside a
// session scope. It panics otherwise.
func MustFromContext(ctx context.Context) View {
	v, ok := FromContext(ctx)
	if !ok {
		panic("session: MustFromContext called outside a session scope")
	}
	return v
}
