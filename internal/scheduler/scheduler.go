// Package scheduler is the calendar state of the schedule view: the event
// list, the option lists its select fields offer, and the create, edit and
// delete round trips to the API.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
)

// API is the part of the REST client the scheduler needs.
type API interface {
	ListTeachers(ctx context.Context) ([]dto.TeacherResponse, error)
	ListEvents(ctx context.Context) ([]dto.ScheduleEventPayload, error)
	ListLabs(ctx context.Context) ([]dto.LabResponse, error)
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	AddEvent(ctx context.Context, ev *dto.ScheduleEventPayload) error
	UpdateEvent(ctx context.Context, ev *dto.ScheduleEventPayload) error
	DeleteEvent(ctx context.Context, id string) error
}

// Event is a schedule event with parsed times.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	TeacherName string
	Subject     string
	Course      string
	Section     string
	Subtitle    string
	ComLab      string
}

// Action tells Confirm whether the event is new.
type Action int

const (
	ActionCreate Action = iota
	ActionEdit
)

func (a Action) String() string {
	if a == ActionEdit {
		return "edit"
	}
	return "create"
}

// Option is one entry of a select field. IDs are 1-based positions.
type Option struct {
	ID    int
	Text  string
	Value string
}

// Scheduler is safe for concurrent use.
type Scheduler struct {
	api      API
	validate *form.Validator
	logger   *zap.Logger
	newID    func() string

	mu       sync.Mutex
	loading  bool
	events   []Event
	teachers []Option
	labs     []Option
	courses  []Option
	subjects []Option
}

// New creates a Scheduler with nothing loaded.
func New(api API, validate *form.Validator, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		api:      api,
		validate: validate,
		logger:   logger,
		newID:    func() string { return uuid.New().String() },
	}
}

// ────────────────────── Loading ──────────────────────

// Load fetches teachers, events, labs, courses and subjects, one after
// another. A failed fetch is logged and leaves that collection empty.
func (s *Scheduler) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	teachers := s.loadOptions(ctx, "teachers", func(ctx context.Context) ([]string, error) {
		list, err := s.api.ListTeachers(ctx)
		out := make([]string, 0, len(list))
		for _, t := range list {
			out = append(out, t.DisplayName())
		}
		return out, err
	})

	events, err := s.fetchEvents(ctx)
	if err != nil {
		s.logger.Error("fetch schedules failed", zap.Error(err))
		events = nil
	}

	labs := s.loadOptions(ctx, "comlabs", func(ctx context.Context) ([]string, error) {
		list, err := s.api.ListLabs(ctx)
		out := make([]string, 0, len(list))
		for _, l := range list {
			out = append(out, l.Name)
		}
		return out, err
	})
	courses := s.loadOptions(ctx, "courses", func(ctx context.Context) ([]string, error) {
		list, err := s.api.ListCourses(ctx)
		out := make([]string, 0, len(list))
		for _, c := range list {
			out = append(out, c.Course)
		}
		return out, err
	})
	subjects := s.loadOptions(ctx, "subjects", func(ctx context.Context) ([]string, error) {
		list, err := s.api.ListSubjects(ctx)
		out := make([]string, 0, len(list))
		for _, sub := range list {
			out = append(out, sub.Subject)
		}
		return out, err
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers, s.events, s.labs, s.courses, s.subjects = teachers, events, labs, courses, subjects
	s.loading = false
}

func (s *Scheduler) loadOptions(ctx context.Context, what string, fetch func(context.Context) ([]string, error)) []Option {
	values, err := fetch(ctx)
	if err != nil {
		s.logger.Error("fetch "+what+" failed", zap.Error(err))
		return nil
	}
	return toOptions(values)
}

func toOptions(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{ID: i + 1, Text: v, Value: v}
	}
	return out
}

// LoadEvents refetches the events only. On failure the current events
// stay and the error is returned.
func (s *Scheduler) LoadEvents(ctx context.Context) error {
	events, err := s.fetchEvents(ctx)
	if err != nil {
		s.logger.Error("fetch schedules failed", zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) fetchEvents(ctx context.Context) ([]Event, error) {
	payloads, err := s.api.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]Event, 0, len(payloads))
	for i := range payloads {
		ev, err := FromPayload(&payloads[i])
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// ────────────────────── Accessors ──────────────────────

// Loading is true while Load runs.
func (s *Scheduler) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Events returns a copy of the loaded events.
func (s *Scheduler) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Event returns the loaded event with id.
func (s *Scheduler) Event(id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return Event{}, false
}

// TeacherOptions, LabOptions, CourseOptions and SubjectOptions return the
// loaded option lists.
func (s *Scheduler) TeacherOptions() []Option { return s.options(&s.teachers) }
func (s *Scheduler) LabOptions() []Option     { return s.options(&s.labs) }
func (s *Scheduler) CourseOptions() []Option  { return s.options(&s.courses) }
func (s *Scheduler) SubjectOptions() []Option { return s.options(&s.subjects) }

func (s *Scheduler) options(list *[]Option) []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Option(nil), (*list)...)
}

// ────────────────────── Mutations ──────────────────────

// Confirm validates ev and creates or updates it, then reloads the
// events. A new event gets a fresh UUID; an edit keeps ev.ID. The
// returned event is what was sent.
func (s *Scheduler) Confirm(ctx context.Context, ev Event, action Action) (Event, error) {
	if action == ActionCreate {
		ev.ID = s.newID()
	} else if ev.ID == "" {
		return ev, fmt.Errorf("edit event: %w", dto.ErrEventIDRequired)
	}

	if err := s.validate.Validate(form.WithChoices(ctx, s.Choices()), toForm(ev)); err != nil {
		return ev, err
	}

	payload := ToPayload(ev)
	var err error
	if action == ActionCreate {
		err = s.api.AddEvent(ctx, &payload)
	} else {
		err = s.api.UpdateEvent(ctx, &payload)
	}
	if err != nil {
		s.logger.Error(action.String()+" event failed", zap.String("event_id", ev.ID), zap.Error(err))
		return ev, err
	}

	_ = s.LoadEvents(ctx)
	return ev, nil
}

// Delete removes the event on the server and then drops exactly that id
// from the local list, without a refetch.
func (s *Scheduler) Delete(ctx context.Context, id string) (string, error) {
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		s.logger.Error("delete event failed", zap.String("event_id", id), zap.Error(err))
		return id, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0:0]
	for _, e := range s.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.events = kept
	return id, nil
}

// ────────────────────── Conversion ──────────────────────

// FromPayload parses a wire event.
func FromPayload(p *dto.ScheduleEventPayload) (Event, error) {
	start, end, err := p.Times()
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          p.EventID,
		Title:       p.Title,
		Start:       start,
		End:         end,
		TeacherName: p.TeacherName,
		Subject:     p.Subject,
		Course:      p.Course,
		Section:     p.Section,
		Subtitle:    p.Subtitle,
		ComLab:      p.ComLab,
	}, nil
}

// ToPayload renders ev for the wire with UTC timestamps.
func ToPayload(ev Event) dto.ScheduleEventPayload {
	return dto.ScheduleEventPayload{
		EventID:     ev.ID,
		Title:       ev.Title,
		Start:       dto.FormatTime(ev.Start),
		End:         dto.FormatTime(ev.End),
		TeacherName: ev.TeacherName,
		Subject:     ev.Subject,
		Course:      ev.Course,
		Section:     ev.Section,
		Subtitle:    ev.Subtitle,
		ComLab:      ev.ComLab,
	}
}

func toForm(ev Event) form.EventForm {
	return form.EventForm{
		EventID:     ev.ID,
		Title:       ev.Title,
		Start:       ev.Start,
		End:         ev.End,
		TeacherName: ev.TeacherName,
		Subject:     ev.Subject,
		Course:      ev.Course,
		Section:     ev.Section,
		Subtitle:    ev.Subtitle,
		ComLab:      ev.ComLab,
	}
}
