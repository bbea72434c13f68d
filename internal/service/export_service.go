package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/model"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/repository"
)

var (
	ErrExportNoEvents     = errors.New("no schedule events to export")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService renders the schedule as a workbook or calendar feed.
//
// Both formats cover every live event; times are shown in the configured
// location.
type ExportService interface {
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService creates an ExportService. A nil location means UTC.
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{repo: repo, loc: loc, now: time.Now, logger: logger}
}

var scheduleSheetHeader = []string{"Date", "Start", "End", "Title", "Subtitle", "Teacher", "Subject", "Course", "Section", "Lab"}

// ═══════════════════════════════════════════════════════════
// ExportXLSX
// ═══════════════════════════════════════════════════════════
//
// Sheet "Schedule": one row per event ordered by start.
// Sheet "Labs": number of events and booked hours per lab.

func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range scheduleSheetHeader {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, c, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(scheduleSheetHeader), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	_ = f.SetColWidth(sheet, "A", "C", 12)
	_ = f.SetColWidth(sheet, "D", "J", 20)

	for i, e := range events {
		start, end := e.StartAt.In(s.loc), e.EndAt.In(s.loc)
		values := []interface{}{
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			e.Title, e.Subtitle, e.TeacherName, e.Subject, e.Course, e.Section, e.ComLab,
		}
		c, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, c, &values); err != nil {
			s.logger.Error("write schedule row failed", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	if err := s.writeLabSheet(f, events, headerStyle); err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("schedule_%s.xlsx", s.now().In(s.loc).Format("20060102")), nil
}

func (s *exportService) writeLabSheet(f *excelize.File, events []model.ScheduleEvent, headerStyle int) error {
	const sheet = "Labs"
	if _, err := f.NewSheet(sheet); err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return ErrExportGenerateFail
	}

	type usage struct {
		count int
		hours float64
	}
	byLab := make(map[string]*usage)
	for _, e := range events {
		u, ok := byLab[e.ComLab]
		if !ok {
			u = &usage{}
			byLab[e.ComLab] = u
		}
		u.count++
		u.hours += e.EndAt.Sub(e.StartAt).Hours()
	}
	labs := make([]string, 0, len(byLab))
	for name := range byLab {
		labs = append(labs, name)
	}
	sort.Strings(labs)

	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"Lab", "Events", "Hours"})
	_ = f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	for i, name := range labs {
		c, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, c, &[]interface{}{name, byLab[name].count, byLab[name].hours})
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context) ([]byte, string, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//comlab//schedule//EN")
	cal.SetName("Computer Lab Schedule")

	stamp := s.now().UTC()
	for _, e := range events {
		ev := cal.AddEvent(e.EventID)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(e.StartAt.UTC())
		ev.SetEndAt(e.EndAt.UTC())
		ev.SetSummary(e.Title)
		ev.SetLocation(e.ComLab)
		ev.SetDescription(fmt.Sprintf("%s · %s %s · %s", e.Subject, e.Course, e.Section, e.TeacherName))
		ev.SetProperty(propTeacher, e.TeacherName)
		ev.SetProperty(propSubject, e.Subject)
		ev.SetProperty(propCourse, e.Course)
		ev.SetProperty(propSection, e.Section)
		if e.Subtitle != "" {
			ev.SetProperty(propSubtitle, e.Subtitle)
		}
	}

	return []byte(cal.Serialize()), "schedule.ics", nil
}

func (s *exportService) events(ctx context.Context) ([]model.ScheduleEvent, error) {
	events, err := s.repo.ScheduleEvent.List(ctx)
	if err != nil {
		s.logger.Error("list schedule events failed", zap.Error(err))
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrExportNoEvents
	}
	return events, nil
}
