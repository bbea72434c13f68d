package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
	pkgerrors "github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/pkg/errors"
)

var ErrInvalidCalendar = errors.New("invalid iCalendar document")

// Properties written by ExportICS so a feed can be imported back without
// losing the fields iCalendar has no slot for.
const (
	propTeacher  ics.ComponentProperty = "X-COMLAB-TEACHER"
	propSubject  ics.ComponentProperty = "X-COMLAB-SUBJECT"
	propCourse   ics.ComponentProperty = "X-COMLAB-COURSE"
	propSection  ics.ComponentProperty = "X-COMLAB-SECTION"
	propSubtitle ics.ComponentProperty = "X-COMLAB-SUBTITLE"
)

const (
	// maxOccurrences caps the expansion of one recurring VEVENT.
	maxOccurrences = 60
	maxEventIDLen  = 64
)

// ImportService turns iCalendar VEVENTs into schedule events.
//
// Each VEVENT becomes one event keyed by its UID. A weekly RRULE is
// expanded into one event per occurrence, keyed UID-YYYYMMDD, with EXDATEs
// left out. Ids already taken are skipped rather than overwritten, so
// importing the same feed twice is harmless.
type ImportService interface {
	ImportICS(ctx context.Context, req *dto.ICSImportRequest, callerID string) (*dto.ICSImportResult, error)
}

type importService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewImportService creates an ImportService. Floating times (no zone, no
// TZID) are read in loc; nil means UTC.
func NewImportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ImportService {
	if loc == nil {
		loc = time.UTC
	}
	return &importService{repo: repo, loc: loc, logger: logger}
}

func (s *importService) ImportICS(ctx context.Context, req *dto.ICSImportRequest, callerID string) (*dto.ICSImportResult, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(req.Calendar))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}

	result := &dto.ICSImportResult{Imported: []string{}, Skipped: []dto.ICSImportSkip{}}
	skip := func(uid, reason string) {
		result.Skipped = append(result.Skipped, dto.ICSImportSkip{UID: uid, Reason: reason})
	}

	for _, vevent := range cal.Events() {
		events, err := s.fromVEvent(vevent, req)
		if err != nil {
			skip(vevent.Id(), err.Error())
			continue
		}

		for _, e := range events {
			if _, _, err := eventPayloadTimes(e); err != nil {
				skip(e.EventID, err.Error())
				continue
			}
			e.CreatedBy = auditID(callerID)
			e.UpdatedBy = auditID(callerID)

			if err := s.repo.ScheduleEvent.Create(ctx, e); err != nil {
				if errors.Is(err, pkgerrors.ErrDuplicateKey) {
					skip(e.EventID, "event id already used")
					continue
				}
				s.logger.Error("import schedule event failed", zap.String("event_id", e.EventID), zap.Error(err))
				return result, err
			}
			result.Imported = append(result.Imported, e.EventID)
		}
	}

	s.logger.Info("ics import finished",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// fromVEvent builds the events of one VEVENT, one per occurrence.
func (s *importService) fromVEvent(vevent *ics.VEvent, req *dto.ICSImportRequest) ([]*model.ScheduleEvent, error) {
	title := propValue(vevent, ics.ComponentPropertySummary)
	if title == "" {
		return nil, errors.New("missing SUMMARY")
	}

	start, err := s.parseDateTime(vevent, ics.ComponentPropertyDtStart)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDateTime(vevent, ics.ComponentPropertyDtEnd)
	if err != nil {
		// No DTEND: fall back to DURATION.
		d, derr := parseICSDuration(propValue(vevent, ics.ComponentPropertyDuration))
		if derr != nil {
			return nil, errors.New("missing DTEND and DURATION")
		}
		end = start.Add(d)
	}

	base := model.ScheduleEvent{
		Title:       title,
		TeacherName: firstNonEmpty(propValue(vevent, propTeacher), req.TeacherName),
		Subject:     firstNonEmpty(propValue(vevent, propSubject), req.Subject),
		Course:      firstNonEmpty(propValue(vevent, propCourse), req.Course),
		Section:     firstNonEmpty(propValue(vevent, propSection), req.Section),
		Subtitle:    propValue(vevent, propSubtitle),
		ComLab:      firstNonEmpty(propValue(vevent, ics.ComponentPropertyLocation), req.ComLab),
	}
	if missing := missingFields(&base); len(missing) > 0 {
		return nil, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	if err := checkLengths(&base); err != nil {
		return nil, err
	}

	uid := vevent.Id()
	if uid == "" {
		uid = uuid.New().String()
	}

	starts := []time.Time{start}
	recurring := false
	if rrule := propValue(vevent, ics.ComponentPropertyRrule); rrule != "" {
		starts, err = expandWeekly(rrule, start, s.exDates(vevent))
		if err != nil {
			return nil, err
		}
		recurring = true
	}

	duration := end.Sub(start)
	out := make([]*model.ScheduleEvent, 0, len(starts))
	for _, st := range starts {
		e := base
		e.EventID = uid
		if recurring {
			e.EventID = uid + "-" + st.In(s.loc).Format("20060102")
		}
		if len(e.EventID) > maxEventIDLen {
			return nil, fmt.Errorf("UID longer than %d characters", maxEventIDLen)
		}
		e.StartAt = st.UTC()
		e.EndAt = st.Add(duration).UTC()
		out = append(out, &e)
	}
	return out, nil
}

func missingFields(e *model.ScheduleEvent) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"teacher_name", e.TeacherName},
		{"subject", e.Subject},
		{"course", e.Course},
		{"section", e.Section},
		{"comlab", e.ComLab},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// checkLengths applies the column limits of schedule_events, which are
// also the binding limits of dto.ScheduleEventPayload.
func checkLengths(e *model.ScheduleEvent) error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"title", e.Title, 200},
		{"teacher_name", e.TeacherName, 200},
		{"subject", e.Subject, 150},
		{"course", e.Course, 100},
		{"section", e.Section, 4},
		{"subtitle", e.Subtitle, 200},
		{"comlab", e.ComLab, 100},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%s longer than %d characters", f.name, f.max)
		}
	}
	return nil
}

func eventPayloadTimes(e *model.ScheduleEvent) (time.Time, time.Time, error) {
	p := toEventPayload(e)
	return p.Times()
}

// ────────────────────── RRULE ──────────────────────

type rrule struct {
	freq     string
	interval int
	count    int
	until    time.Time
}

// parseRRule reads FREQ, INTERVAL, COUNT and UNTIL; other parts are
// ignored.
func parseRRule(value string) (rrule, error) {
	r := rrule{interval: 1}
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			r.freq = strings.ToUpper(kv[1])
		case "INTERVAL":
			n, err := strconv.Atoi(kv[1])
			if err != nil || n < 1 {
				return r, fmt.Errorf("bad RRULE INTERVAL %q", kv[1])
			}
			r.interval = n
		case "COUNT":
			n, err := strconv.Atoi(kv[1])
			if err != nil || n < 1 {
				return r, fmt.Errorf("bad RRULE COUNT %q", kv[1])
			}
			r.count = n
		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", kv[1])
			if err != nil {
				t, err = time.Parse("20060102", kv[1])
				if err != nil {
					return r, fmt.Errorf("bad RRULE UNTIL %q", kv[1])
				}
				// A date-only UNTIL includes that whole day.
				t = t.AddDate(0, 0, 1).Add(-time.Second)
			}
			r.until = t
		}
	}
	return r, nil
}

// expandWeekly lists the occurrence starts of a weekly rule. Rules with
// neither COUNT nor UNTIL stop at maxOccurrences.
func expandWeekly(value string, start time.Time, exdates map[int64]bool) ([]time.Time, error) {
	r, err := parseRRule(value)
	if err != nil {
		return nil, err
	}
	if r.freq != "WEEKLY" {
		return nil, fmt.Errorf("unsupported RRULE FREQ %q", r.freq)
	}

	var out []time.Time
	for i, cur := 0, start; i < maxOccurrences; i, cur = i+1, cur.AddDate(0, 0, 7*r.interval) {
		if r.count > 0 && i >= r.count {
			break
		}
		if !r.until.IsZero() && cur.After(r.until) {
			break
		}
		if exdates[cur.Unix()] {
			continue
		}
		out = append(out, cur)
	}
	if len(out) == 0 {
		return nil, errors.New("RRULE has no occurrences")
	}
	return out, nil
}

// exDates collects every EXDATE, which may repeat and hold lists.
func (s *importService) exDates(vevent *ics.VEvent) map[int64]bool {
	out := make(map[int64]bool)
	for _, prop := range vevent.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		for _, v := range strings.Split(prop.Value, ",") {
			if t, err := s.parseValue(v, tzid(&prop)); err == nil {
				out[t.Unix()] = true
			}
		}
	}
	return out
}

// ────────────────────── Values ──────────────────────

func propValue(vevent *ics.VEvent, name ics.ComponentProperty) string {
	p := vevent.GetProperty(name)
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.Value)
}

func tzid(p *ics.IANAProperty) string {
	for k, v := range p.ICalParameters {
		if strings.EqualFold(k, "TZID") && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func (s *importService) parseDateTime(vevent *ics.VEvent, name ics.ComponentProperty) (time.Time, error) {
	p := vevent.GetProperty(name)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing %s", name)
	}
	return s.parseValue(p.Value, tzid(p))
}

// parseValue accepts UTC, TZID-qualified and floating date-times, and
// plain dates.
func (s *importService) parseValue(value, tz string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("20060102T150405Z", value); err == nil {
		return t, nil
	}

	loc := s.loc
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q", tz)
		}
		loc = l
	}
	for _, layout := range []string{"20060102T150405", "20060102"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", value)
}

// parseICSDuration handles the time part of an RFC 5545 duration, e.g.
// PT1H30M.
func parseICSDuration(v string) (time.Duration, error) {
	if !strings.HasPrefix(v, "PT") {
		return 0, fmt.Errorf("unsupported DURATION %q", v)
	}
	d, err := time.ParseDuration(strings.ToLower(strings.TrimPrefix(v, "PT")))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("unsupported DURATION %q", v)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
