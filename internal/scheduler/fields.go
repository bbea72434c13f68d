package scheduler

import (
	"fmt"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
)

// Field is one extra input of the event editor.
type Field struct {
	Name     string
	Label    string
	Type     string
	Options  []Option
	Required bool
	ErrMsg   string
}

// sections is 1A..4J: years 1-4, blocks A-J.
var sections = func() []Option {
	out := make([]Option, 0, 40)
	for year := 1; year <= 4; year++ {
		for block := 'A'; block <= 'J'; block++ {
			s := fmt.Sprintf("%d%c", year, block)
			out = append(out, Option{ID: len(out) + 1, Text: s, Value: s})
		}
	}
	return out
}()

// SectionOptions returns the fixed section list.
func SectionOptions() []Option {
	return append([]Option(nil), sections...)
}

// Fields describes the editor's select fields in display order.
func (s *Scheduler) Fields() []Field {
	return []Field{
		{Name: "teacher_name", Label: "Teacher", Type: "select", Options: s.TeacherOptions(), Required: true, ErrMsg: "Please select a teacher"},
		{Name: "subject", Label: "Subject", Type: "select", Options: s.SubjectOptions(), Required: true, ErrMsg: "Please select a subject"},
		{Name: "course", Label: "Course", Type: "select", Options: s.CourseOptions(), Required: true, ErrMsg: "Please select a course"},
		{Name: "section", Label: "Section", Type: "select", Options: SectionOptions(), Required: true, ErrMsg: "Please select a section"},
		{Name: "comlab", Label: "Com Lab", Type: "select", Options: s.LabOptions(), Required: true, ErrMsg: "Please select a comlab"},
	}
}

// Choices turns the select fields into option lists for form validation.
func (s *Scheduler) Choices() form.Choices {
	choices := make(form.Choices)
	for _, f := range s.Fields() {
		values := make([]string, len(f.Options))
		for i, o := range f.Options {
			values[i] = o.Value
		}
		choices[f.Name] = values
	}
	return choices
}
