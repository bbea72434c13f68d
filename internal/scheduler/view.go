package scheduler

import (
	"sort"
	"time"
)

// WeekConfig shapes the week and day grids.
type WeekConfig struct {
	StartOn   time.Weekday
	Days      int
	StartHour int
	EndHour   int
	Step      time.Duration
}

// DefaultWeek is Saturday through Thursday, 06:00 to 22:00 in hour steps.
var DefaultWeek = WeekConfig{
	StartOn:   time.Saturday,
	Days:      6,
	StartHour: 6,
	EndHour:   22,
	Step:      time.Hour,
}

// DayColumn is one day of a grid.
type DayColumn struct {
	Date   time.Time
	Slots  []time.Time
	Events []Event
}

// Week returns the columns of the week containing anchor, in anchor's
// location, using DefaultWeek.
func (s *Scheduler) Week(anchor time.Time) []DayColumn {
	return s.WeekWith(DefaultWeek, anchor)
}

// WeekWith is Week with an explicit configuration.
func (s *Scheduler) WeekWith(cfg WeekConfig, anchor time.Time) []DayColumn {
	day := midnight(anchor)
	offset := (int(day.Weekday()) - int(cfg.StartOn) + 7) % 7
	first := day.AddDate(0, 0, -offset)

	events := s.Events()
	cols := make([]DayColumn, 0, cfg.Days)
	for i := 0; i < cfg.Days; i++ {
		cols = append(cols, column(cfg, first.AddDate(0, 0, i), events))
	}
	return cols
}

// Day returns the single column for date, using DefaultWeek hours.
func (s *Scheduler) Day(date time.Time) DayColumn {
	return column(DefaultWeek, midnight(date), s.Events())
}

func column(cfg WeekConfig, date time.Time, events []Event) DayColumn {
	from := date.Add(time.Duration(cfg.StartHour) * time.Hour)
	to := date.Add(time.Duration(cfg.EndHour) * time.Hour)

	col := DayColumn{Date: date}
	for t := from; t.Before(to); t = t.Add(cfg.Step) {
		col.Slots = append(col.Slots, t)
	}
	for _, e := range events {
		if e.Start.Before(to) && e.End.After(from) {
			e.Start, e.End = e.Start.In(date.Location()), e.End.In(date.Location())
			col.Events = append(col.Events, e)
		}
	}
	sort.SliceStable(col.Events, func(i, j int) bool { return col.Events[i].Start.Before(col.Events[j].Start) })
	return col
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
