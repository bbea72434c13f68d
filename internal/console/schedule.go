package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/scheduler"
)

// ScheduleView is the calendar page. It announces the outcome of each
// mutation; the scheduler itself only logs.
type ScheduleView struct {
	app *App
	*scheduler.Scheduler
}

// Schedule builds the calendar view. Call Load to fill it.
func (a *App) Schedule() *ScheduleView {
	return &ScheduleView{
		app:       a,
		Scheduler: scheduler.New(a.API, a.Validate, a.logger("schedule")),
	}
}

// Save creates or edits ev.
func (v *ScheduleView) Save(ctx context.Context, ev scheduler.Event, action scheduler.Action) (scheduler.Event, error) {
	saved, err := v.Confirm(ctx, ev, action)
	if err != nil {
		v.notifyFailure(err)
		return saved, err
	}
	if action == scheduler.ActionEdit {
		v.app.Notifier.Success("Edited successfully")
	} else {
		v.app.Notifier.Success("Added successfully")
	}
	return saved, nil
}

// Remove deletes the event with id.
func (v *ScheduleView) Remove(ctx context.Context, id string) error {
	if _, err := v.Delete(ctx, id); err != nil {
		v.notifyFailure(err)
		return err
	}
	v.app.Notifier.Info("Event deleted")
	return nil
}

// Export downloads the schedule as "xlsx" or "ics".
func (v *ScheduleView) Export(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case "xlsx":
		return v.app.API.ExportXLSX(ctx)
	case "ics":
		return v.app.API.ExportICS(ctx)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Import uploads an iCalendar document and reloads the events. defaults
// fill the fields a VEVENT does not carry.
func (v *ScheduleView) Import(ctx context.Context, calendar []byte, defaults dto.ICSImportRequest) (*dto.ICSImportResult, error) {
	defaults.Calendar = string(calendar)
	result, err := v.app.API.ImportICS(ctx, &defaults)
	if err != nil {
		v.notifyFailure(err)
		return nil, err
	}
	v.app.Notifier.Success(fmt.Sprintf("%d event/s imported, %d skipped", len(result.Imported), len(result.Skipped)))
	_ = v.LoadEvents(ctx)
	return result, nil
}

func (v *ScheduleView) notifyFailure(err error) {
	var ferr *form.Errors
	if errors.As(err, &ferr) {
		return
	}
	v.app.Notifier.Error(fmt.Sprintf("Request failed: %v", err))
}
