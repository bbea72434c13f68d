package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	fail     map[string]error
	teachers []dto.TeacherResponse
	events   []dto.ScheduleEventPayload
	labs     []dto.LabResponse
	courses  []dto.CourseResponse
	subjects []dto.SubjectResponse
	sent     []dto.ScheduleEventPayload
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeAPI) ListTeachers(context.Context) ([]dto.TeacherResponse, error) {
	if err := f.record("teachers"); err != nil {
		return nil, err
	}
	return f.teachers, nil
}

func (f *fakeAPI) ListEvents(context.Context) ([]dto.ScheduleEventPayload, error) {
	if err := f.record("events"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.ScheduleEventPayload(nil), f.events...), nil
}

func (f *fakeAPI) ListLabs(context.Context) ([]dto.LabResponse, error) {
	if err := f.record("labs"); err != nil {
		return nil, err
	}
	return f.labs, nil
}

func (f *fakeAPI) ListCourses(context.Context) ([]dto.CourseResponse, error) {
	if err := f.record("courses"); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakeAPI) ListSubjects(context.Context) ([]dto.SubjectResponse, error) {
	if err := f.record("subjects"); err != nil {
		return nil, err
	}
	return f.subjects, nil
}

func (f *fakeAPI) AddEvent(_ context.Context, ev *dto.ScheduleEventPayload) error {
	if err := f.record("add"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *ev)
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeAPI) UpdateEvent(_ context.Context, ev *dto.ScheduleEventPayload) error {
	if err := f.record("update"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, *ev)
	for i := range f.events {
		if f.events[i].EventID == ev.EventID {
			f.events[i] = *ev
		}
	}
	return nil
}

func (f *fakeAPI) DeleteEvent(_ context.Context, id string) error {
	return f.record("delete:" + id)
}

func newFake() *fakeAPI {
	return &fakeAPI{
		fail:     map[string]error{},
		teachers: []dto.TeacherResponse{{ID: "t1", FirstName: "Ada", LastName: "Lovelace"}, {ID: "t2", FirstName: "Alan", LastName: "Turing"}},
		labs:     []dto.LabResponse{{ID: "l1", Name: "Lab A"}, {ID: "l2", Name: "Lab B"}},
		courses:  []dto.CourseResponse{{ID: "c1", Course: "BSIT"}},
		subjects: []dto.SubjectResponse{{ID: "s1", Subject: "Programming 1"}},
		events: []dto.ScheduleEventPayload{
			payload("e1", "2024-01-01T08:00:00.000Z", "2024-01-01T09:00:00.000Z"),
			payload("e2", "2024-01-02T13:00:00.000Z", "2024-01-02T15:00:00.000Z"),
		},
	}
}

func payload(id, start, end string) dto.ScheduleEventPayload {
	return dto.ScheduleEventPayload{
		EventID: id, Title: "Programming 1", Start: start, End: end,
		TeacherName: "Ada Lovelace", Subject: "Programming 1", Course: "BSIT", Section: "1A", ComLab: "Lab A",
	}
}

func newScheduler(api API) *Scheduler {
	return New(api, form.New(), zap.NewNop())
}

func draft() Event {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return Event{
		Title: "Programming 1", Start: start, End: start.Add(time.Hour),
		TeacherName: "Ada Lovelace", Subject: "Programming 1", Course: "BSIT", Section: "1A", ComLab: "Lab A",
	}
}

func TestLoad_SequentialOrderAndOptions(t *testing.T) {
	api := newFake()
	s := newScheduler(api)

	s.Load(context.Background())

	assert.Equal(t, []string{"teachers", "events", "labs", "courses", "subjects"}, api.calls)
	assert.False(t, s.Loading())
	assert.Len(t, s.Events(), 2)
	assert.Equal(t, []Option{
		{ID: 1, Text: "Ada Lovelace", Value: "Ada Lovelace"},
		{ID: 2, Text: "Alan Turing", Value: "Alan Turing"},
	}, s.TeacherOptions())
	assert.Equal(t, "Lab B", s.LabOptions()[1].Value)
	assert.Equal(t, 1, s.CourseOptions()[0].ID)
	assert.Equal(t, "Programming 1", s.SubjectOptions()[0].Text)
}

func TestLoad_FailureLeavesCollectionEmpty(t *testing.T) {
	api := newFake()
	api.fail["labs"] = errBoom
	api.fail["events"] = errBoom
	s := newScheduler(api)

	s.Load(context.Background())

	assert.Empty(t, s.LabOptions())
	assert.Empty(t, s.Events())
	assert.Len(t, s.TeacherOptions(), 2)
	assert.Len(t, s.SubjectOptions(), 1)
}

func TestLoad_MalformedEventRejectsFetch(t *testing.T) {
	api := newFake()
	api.events = append(api.events, payload("bad", "yesterday", "2024-01-01T09:00:00.000Z"))
	s := newScheduler(api)

	s.Load(context.Background())

	assert.Empty(t, s.Events())
}

func TestConfirm_CreateAssignsUUIDAndReloads(t *testing.T) {
	api := newFake()
	s := newScheduler(api)
	s.Load(context.Background())
	s.newID = func() string { return "11111111-2222-3333-4444-555555555555" }

	ev, err := s.Confirm(context.Background(), draft(), ActionCreate)
	require.NoError(t, err)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", ev.ID)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "2024-01-01T08:00:00.000Z", api.sent[0].Start)
	assert.Equal(t, "2024-01-01T09:00:00.000Z", api.sent[0].End)
	assert.Equal(t, []string{"add", "events"}, api.calls[len(api.calls)-2:])

	got, ok := s.Event(ev.ID)
	require.True(t, ok)
	assert.True(t, got.Start.Equal(draft().Start))
}

func TestConfirm_CreateSerialisesInUTC(t *testing.T) {
	api := newFake()
	s := newScheduler(api)
	s.Load(context.Background())

	manila := time.FixedZone("PHT", 8*3600)
	ev := draft()
	ev.Start = time.Date(2024, 1, 1, 16, 0, 0, 0, manila)
	ev.End = ev.Start.Add(time.Hour)

	_, err := s.Confirm(context.Background(), ev, ActionCreate)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T08:00:00.000Z", api.sent[0].Start)
}

func TestConfirm_UnknownOptionFailsValidation(t *testing.T) {
	api := newFake()
	s := newScheduler(api)
	s.Load(context.Background())

	ev := draft()
	ev.ComLab = "Lab Z"
	ev.Section = ""

	_, err := s.Confirm(context.Background(), ev, ActionCreate)

	var ferr *form.Errors
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Please select a comlab", ferr.Field("comlab"))
	assert.Equal(t, "Please select a section", ferr.Field("section"))
	assert.Empty(t, api.sent)
}

func TestConfirm_EditKeepsIDAndPuts(t *testing.T) {
	api := newFake()
	s := newScheduler(api)
	s.Load(context.Background())

	ev, ok := s.Event("e1")
	require.True(t, ok)
	ev.Title = "Programming 2"
	ev.ComLab = "Lab B"

	_, err := s.Confirm(context.Background(), ev, ActionEdit)
	require.NoError(t, err)

	assert.Contains(t, api.calls, "update")
	got, _ := s.Event("e1")
	assert.Equal(t, "Programming 2", got.Title)
	assert.Equal(t, "Lab B", got.ComLab)
}

func TestConfirm_EditWithoutID(t *testing.T) {
	s := newScheduler(newFake())
	_, err := s.Confirm(context.Background(), draft(), ActionEdit)
	assert.ErrorIs(t, err, dto.ErrEventIDRequired)
}

func TestConfirm_WriteFailureKeepsEvents(t *testing.T) {
	api := newFake()
	api.fail["add"] = errBoom
	s := newScheduler(api)
	s.Load(context.Background())

	_, err := s.Confirm(context.Background(), draft(), ActionCreate)

	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, s.Events(), 2)
}

func TestDelete_RemovesExactlyThatID(t *testing.T) {
	api := newFake()
	s := newScheduler(api)
	s.Load(context.Background())
	before := len(api.calls)

	id, err := s.Delete(context.Background(), "e1")
	require.NoError(t, err)

	assert.Equal(t, "e1", id)
	assert.Equal(t, []string{"delete:e1"}, api.calls[before:])
	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)
}

func TestDelete_FailureKeepsEvent(t *testing.T) {
	api := newFake()
	api.fail["delete:e1"] = errBoom
	s := newScheduler(api)
	s.Load(context.Background())

	_, err := s.Delete(context.Background(), "e1")

	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, s.Events(), 2)
}

func TestSectionOptions(t *testing.T) {
	opts := SectionOptions()
	require.Len(t, opts, 40)
	assert.Equal(t, Option{ID: 1, Text: "1A", Value: "1A"}, opts[0])
	assert.Equal(t, "1J", opts[9].Value)
	assert.Equal(t, "4J", opts[39].Value)
	assert.Equal(t, 40, opts[39].ID)
}

func TestFields(t *testing.T) {
	s := newScheduler(newFake())
	s.Load(context.Background())

	fields := s.Fields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
		assert.Equal(t, "select", f.Type)
		assert.True(t, f.Required)
		assert.True(t, strings.HasPrefix(f.ErrMsg, "Please select a "))
	}
	assert.Equal(t, []string{"teacher_name", "subject", "course", "section", "comlab"}, names)
	assert.Equal(t, []string{"Lab A", "Lab B"}, s.Choices()["comlab"])
}

func TestWeek_SaturdayStartAndVisibleHours(t *testing.T) {
	s := newScheduler(newFake())
	s.Load(context.Background())

	// Wednesday 2024-01-03 belongs to the week starting Saturday 2023-12-30.
	cols := s.Week(time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))
	require.Len(t, cols, 6)
	assert.Equal(t, time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC), cols[0].Date)
	assert.Equal(t, time.Thursday, cols[5].Date.Weekday())

	require.Len(t, cols[0].Slots, 16)
	assert.Equal(t, 6, cols[0].Slots[0].Hour())
	assert.Equal(t, 21, cols[0].Slots[15].Hour())

	monday := cols[2]
	require.Len(t, monday.Events, 1)
	assert.Equal(t, "e1", monday.Events[0].ID)
	assert.Len(t, cols[3].Events, 1)
	assert.Empty(t, cols[4].Events)
}

func TestDay_EventOutsideHoursIsHidden(t *testing.T) {
	api := newFake()
	api.events = []dto.ScheduleEventPayload{
		payload("night", "2024-01-01T23:00:00.000Z", "2024-01-01T23:30:00.000Z"),
		payload("morning", "2024-01-01T08:00:00.000Z", "2024-01-01T09:00:00.000Z"),
	}
	s := newScheduler(api)
	s.Load(context.Background())

	col := s.Day(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, col.Events, 1)
	assert.Equal(t, "morning", col.Events[0].ID)
}
