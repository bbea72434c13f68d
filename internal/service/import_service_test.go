package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
)

func calendar(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func skipReasons(result *dto.ICSImportResult) map[string]string {
	reasons := make(map[string]string, len(result.Skipped))
	for _, s := range result.Skipped {
		reasons[s.UID] = s.Reason
	}
	return reasons
}

func TestImportService_RoundTripsExport(t *testing.T) {
	ctx := context.Background()
	export := setupTestExportService(t, true)
	feed, _, err := export.ExportICS(ctx)
	require.NoError(t, err)

	repo := newTestRepo()
	svc := NewImportService(repo, time.UTC, zap.NewNop())

	result, err := svc.ImportICS(ctx, &dto.ICSImportRequest{Calendar: string(feed)}, "")
	require.NoError(t, err)
	require.Len(t, result.Imported, 2)
	require.Empty(t, result.Skipped)

	got, err := repo.ScheduleEvent.GetByID(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.TeacherName)
	assert.Equal(t, "1A", got.Section)
	assert.Equal(t, "Lecture", got.Subtitle)
	assert.Equal(t, "Lab A", got.ComLab)
	assert.True(t, got.StartAt.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)), "unexpected start %s", got.StartAt)

	again, err := svc.ImportICS(ctx, &dto.ICSImportRequest{Calendar: string(feed)}, "")
	require.NoError(t, err)
	assert.Empty(t, again.Imported)
	assert.Len(t, again.Skipped, 2, "re-import should skip every event")
}

func TestImportService_WeeklyRuleWithExdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewImportService(repo, time.UTC, zap.NewNop())

	doc := calendar(
		"BEGIN:VEVENT",
		"UID:prog1",
		"SUMMARY:Programming 1",
		"DTSTART:20240101T080000Z",
		"DTEND:20240101T093000Z",
		"RRULE:FREQ=WEEKLY;COUNT=4",
		"EXDATE:20240108T080000Z",
		"END:VEVENT",
	)
	req := &dto.ICSImportRequest{
		Calendar: doc, TeacherName: "Ada Lovelace", Subject: "Programming 1",
		Course: "BSIT", Section: "1A", ComLab: "Lab A",
	}

	result, err := svc.ImportICS(ctx, req, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"prog1-20240101", "prog1-20240115", "prog1-20240122"}, result.Imported)

	last, err := repo.ScheduleEvent.GetByID(ctx, "prog1-20240122")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, last.EndAt.Sub(last.StartAt), "occurrence should keep the 90 minute duration")
}

func TestImportService_FloatingTimesUseLocation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewImportService(repo, time.FixedZone("PHT", 8*3600), zap.NewNop())

	doc := calendar(
		"BEGIN:VEVENT",
		"UID:floating",
		"SUMMARY:Networking",
		"DTSTART:20240101T080000",
		"DURATION:PT1H30M",
		"LOCATION:Lab B",
		"END:VEVENT",
	)
	req := &dto.ICSImportRequest{Calendar: doc, TeacherName: "Alan Turing", Subject: "Networking", Course: "BSCS", Section: "2B"}

	_, err := svc.ImportICS(ctx, req, "")
	require.NoError(t, err)

	got, err := repo.ScheduleEvent.GetByID(ctx, "floating")
	require.NoError(t, err)
	assert.True(t, got.StartAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), "expected 00:00 UTC, got %s", got.StartAt)
	assert.True(t, got.EndAt.Equal(got.StartAt.Add(90*time.Minute)), "expected DURATION to set the end, got %s", got.EndAt)
	assert.Equal(t, "Lab B", got.ComLab, "LOCATION should win over defaults")
}

func TestImportService_SkipsIncompleteEvents(t *testing.T) {
	ctx := context.Background()
	svc := NewImportService(newTestRepo(), time.UTC, zap.NewNop())

	doc := calendar(
		"BEGIN:VEVENT",
		"UID:no-lab",
		"SUMMARY:Programming 1",
		"DTSTART:20240101T080000Z",
		"DTEND:20240101T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-summary",
		"DTSTART:20240101T080000Z",
		"DTEND:20240101T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:inverted",
		"SUMMARY:Backwards",
		"DTSTART:20240101T090000Z",
		"DTEND:20240101T080000Z",
		"LOCATION:Lab A",
		"END:VEVENT",
	)
	req := &dto.ICSImportRequest{Calendar: doc, TeacherName: "Ada Lovelace", Subject: "Programming 1", Course: "BSIT", Section: "1A"}

	result, err := svc.ImportICS(ctx, req, "")
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	require.Len(t, result.Skipped, 3)

	reasons := skipReasons(result)
	assert.Equal(t, "missing comlab", reasons["no-lab"])
	assert.Equal(t, "missing SUMMARY", reasons["no-summary"])
	assert.Contains(t, reasons["inverted"], "end must be after start")
}

func TestImportService_SkipsOverlongFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewImportService(repo, time.UTC, zap.NewNop())

	doc := calendar(
		"BEGIN:VEVENT",
		"UID:long-title",
		"SUMMARY:"+strings.Repeat("x", 300),
		"DTSTART:20240101T080000Z",
		"DTEND:20240101T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:long-section",
		"SUMMARY:Programming 1",
		"DTSTART:20240101T100000Z",
		"DTEND:20240101T110000Z",
		"X-COMLAB-SECTION:TOOLONGSECTION",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:fits",
		"SUMMARY:Programming 2",
		"DTSTART:20240101T120000Z",
		"DTEND:20240101T130000Z",
		"END:VEVENT",
	)
	req := &dto.ICSImportRequest{
		Calendar: doc, TeacherName: "Ada Lovelace", Subject: "Programming 1",
		Course: "BSIT", Section: "1A", ComLab: "Lab A",
	}

	result, err := svc.ImportICS(ctx, req, "")
	require.NoError(t, err, "one bad VEVENT must not abort the batch")
	assert.Equal(t, []string{"fits"}, result.Imported)

	reasons := skipReasons(result)
	assert.Equal(t, "title longer than 200 characters", reasons["long-title"])
	assert.Equal(t, "section longer than 4 characters", reasons["long-section"])

	_, err = repo.ScheduleEvent.GetByID(ctx, "long-title")
	assert.Error(t, err, "over-long event must not be stored")
	_, err = repo.ScheduleEvent.GetByID(ctx, "long-section")
	assert.Error(t, err, "over-long event must not be stored")
}

func TestImportService_InvalidCalendar(t *testing.T) {
	svc := NewImportService(newTestRepo(), time.UTC, zap.NewNop())
	_, err := svc.ImportICS(context.Background(), &dto.ICSImportRequest{Calendar: "hello"}, "")
	assert.ErrorIs(t, err, ErrInvalidCalendar)
}

func TestExpandWeekly(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		rule  string
		count int
		err   bool
	}{
		{"count", "FREQ=WEEKLY;COUNT=3", 3, false},
		{"interval", "FREQ=WEEKLY;INTERVAL=2;UNTIL=20240131T000000Z", 3, false},
		{"date-only until is inclusive", "FREQ=WEEKLY;UNTIL=20240115", 3, false},
		{"unbounded is capped", "FREQ=WEEKLY", maxOccurrences, false},
		{"daily unsupported", "FREQ=DAILY;COUNT=3", 0, true},
		{"bad count", "FREQ=WEEKLY;COUNT=x", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandWeekly(tt.rule, start, nil)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.count)
		})
	}
}
