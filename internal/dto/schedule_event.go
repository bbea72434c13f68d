package dto

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the ISO-8601 form used on the wire, millisecond precision
// in UTC ("2024-01-01T08:00:00.000Z").
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrEventIDRequired = errors.New("event_id is required")
	ErrEventRange      = errors.New("end must be after start")
)

// ScheduleEventPayload is the wire form of a schedule event, both as
// request body and as list element.
type ScheduleEventPayload struct {
	EventID     string `json:"event_id"     binding:"required,max=64"`
	Title       string `json:"title"        binding:"required,max=200"`
	Start       string `json:"start"        binding:"required"`
	End         string `json:"end"          binding:"required"`
	TeacherName string `json:"teacher_name" binding:"required,max=200"`
	Subject     string `json:"subject"      binding:"required,max=150"`
	Course      string `json:"course"       binding:"required,max=100"`
	Section     string `json:"section"      binding:"required,max=4"`
	Subtitle    string `json:"subtitle"     binding:"max=200"`
	ComLab      string `json:"comlab"       binding:"required,max=100"`
}

// FormatTime renders t the way the wire expects.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts any RFC 3339 timestamp, with or without fraction.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Times parses and checks start/end. A payload that fails here must not
// enter application state.
func (p *ScheduleEventPayload) Times() (start, end time.Time, err error) {
	if p.EventID == "" {
		return time.Time{}, time.Time{}, ErrEventIDRequired
	}
	start, err = ParseTime(p.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %s: invalid start %q: %w", p.EventID, p.Start, err)
	}
	end, err = ParseTime(p.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event %s: invalid end %q: %w", p.EventID, p.End, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("event %s: %w", p.EventID, ErrEventRange)
	}
	return start, end, nil
}
