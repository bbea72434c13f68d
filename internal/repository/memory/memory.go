// Package memory is an in-process implementation of the repositories,
// used for local development (db.driver: memory) and end-to-end tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

// DB holds every table behind one lock.
type DB struct {
	mu       sync.RWMutex
	seq      int64
	teachers map[string]*model.Teacher
	labs     map[string]*row[model.ComputerLab]
	courses  map[string]*model.Course
	subjects map[string]*model.Subject
	events   map[string]*model.ScheduleEvent
	// deleted event ids keep their key reserved, as a soft delete would.
	tombstones map[string]bool
	now        func() time.Time
}

type row[T any] struct {
	seq int64
	v   T
}

// New creates an empty store.
func New() *DB {
	return &DB{
		teachers:   make(map[string]*model.Teacher),
		labs:       make(map[string]*row[model.ComputerLab]),
		courses:    make(map[string]*model.Course),
		subjects:   make(map[string]*model.Subject),
		events:     make(map[string]*model.ScheduleEvent),
		tombstones: make(map[string]bool),
		now:        time.Now,
	}
}

// NewRepository wires the in-memory repositories over a fresh store.
func NewRepository() *repository.Repository {
	return New().Repository()
}

// Repository exposes this store through the repository interfaces.
func (db *DB) Repository() *repository.Repository {
	return &repository.Repository{
		Teacher:       &teacherRepo{db: db},
		Lab:           &labRepo{db: db},
		Course:        &courseRepo{db: db},
		Subject:       &subjectRepo{db: db},
		ScheduleEvent: &eventRepo{db: db},
	}
}

// ── teachers ──

type teacherRepo struct{ db *DB }

func (r *teacherRepo) Create(_ context.Context, t *model.Teacher) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.teachers {
		if existing.Email == t.Email {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if t.TeacherID == "" {
		t.TeacherID = uuid.New().String()
	}
	if t.Role == "" {
		t.Role = model.RoleTeacher
	}
	now := r.db.now()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.db.teachers[t.TeacherID] = &cp
	return nil
}

func (r *teacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if t, ok := r.db.teachers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *teacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, t := range r.db.teachers {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *teacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Teacher, 0, len(r.db.teachers))
	for _, t := range r.db.teachers {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

// ── computer labs ──

type labRepo struct{ db *DB }

func (r *labRepo) Create(_ context.Context, lab *model.ComputerLab) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if lab.LabID == "" {
		lab.LabID = uuid.New().String()
	}
	now := r.db.now()
	lab.CreatedAt, lab.UpdatedAt = now, now
	r.db.seq++
	r.db.labs[lab.LabID] = &row[model.ComputerLab]{seq: r.db.seq, v: *lab}
	return nil
}

func (r *labRepo) GetByID(_ context.Context, id string) (*model.ComputerLab, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if l, ok := r.db.labs[id]; ok {
		cp := l.v
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *labRepo) List(_ context.Context) ([]model.ComputerLab, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*row[model.ComputerLab], 0, len(r.db.labs))
	for _, l := range r.db.labs {
		rows = append(rows, l)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]model.ComputerLab, 0, len(rows))
	for _, l := range rows {
		out = append(out, l.v)
	}
	return out, nil
}

func (r *labRepo) Update(_ context.Context, lab *model.ComputerLab) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	l, ok := r.db.labs[lab.LabID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	lab.UpdatedAt = r.db.now()
	l.v = *lab
	return nil
}

func (r *labRepo) Delete(_ context.Context, id string, _ string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.labs, id)
	return nil
}

// ── courses & subjects ──

type courseRepo struct{ db *DB }

func (r *courseRepo) Create(_ context.Context, c *model.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.courses {
		if existing.Name == c.Name {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if c.CourseID == "" {
		c.CourseID = uuid.New().String()
	}
	now := r.db.now()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	r.db.courses[c.CourseID] = &cp
	return nil
}

func (r *courseRepo) List(_ context.Context) ([]model.Course, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Course, 0, len(r.db.courses))
	for _, c := range r.db.courses {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type subjectRepo struct{ db *DB }

func (r *subjectRepo) Create(_ context.Context, s *model.Subject) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.subjects {
		if existing.Name == s.Name {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if s.SubjectID == "" {
		s.SubjectID = uuid.New().String()
	}
	now := r.db.now()
	s.CreatedAt, s.UpdatedAt = now, now
	cp := *s
	r.db.subjects[s.SubjectID] = &cp
	return nil
}

func (r *subjectRepo) List(_ context.Context) ([]model.Subject, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Subject, 0, len(r.db.subjects))
	for _, s := range r.db.subjects {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── schedule events ──

type eventRepo struct{ db *DB }

func (r *eventRepo) Create(_ context.Context, e *model.ScheduleEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.events[e.EventID]; ok || r.db.tombstones[e.EventID] {
		return pkgerrors.ErrDuplicateKey
	}
	now := r.db.now()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	r.db.events[e.EventID] = &cp
	return nil
}

func (r *eventRepo) GetByID(_ context.Context, id string) (*model.ScheduleEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if e, ok := r.db.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *eventRepo) List(_ context.Context) ([]model.ScheduleEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.ScheduleEvent, 0, len(r.db.events))
	for _, e := range r.db.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].EventID < out[j].EventID
	})
	return out, nil
}

func (r *eventRepo) Update(_ context.Context, e *model.ScheduleEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.events[e.EventID]; !ok {
		return gorm.ErrRecordNotFound
	}
	e.UpdatedAt = r.db.now()
	cp := *e
	r.db.events[e.EventID] = &cp
	return nil
}

func (r *eventRepo) Delete(_ context.Context, id string, _ string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.events[id]; ok {
		delete(r.db.events, id)
		r.db.tombstones[id] = true
	}
	return nil
}
