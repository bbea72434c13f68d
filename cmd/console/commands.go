package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/client"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/console"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/scheduler"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/session"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/table"
)

type cli struct {
	app   *console.App
	api   *client.Client
	store *session.FileStore
	out   io.Writer
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami()
	case "use":
		return c.use(args)
	case "labs":
		return c.labs(ctx, args)
	case "teachers":
		return c.teachers(ctx, args)
	case "courses":
		return c.courses(ctx, args)
	case "subjects":
		return c.subjects(ctx, args)
	case "schedule":
		return c.schedule(ctx, args)
	case "routes":
		return c.routes(args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// ────────────────────── Session ──────────────────────

// openSession restores the persisted teacher and waits for its profile.
func (c *cli) openSession() *session.Session {
	sess := session.New(c.store, c.api, c.app.Logger)
	sess.Wait()
	c.app.Session = sess
	return sess
}

func (c *cli) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: login <email> <password>", errUsage)
	}
	resp, err := c.api.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := c.store.SaveToken(resp.AccessToken); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	c.api.SetToken(resp.AccessToken)

	sess := c.openSession()
	defer sess.Close()
	if err := sess.SetTeacherID(resp.Teacher.ID); err != nil {
		return fmt.Errorf("save teacher id: %w", err)
	}
	sess.Wait()
	fmt.Fprintf(c.out, "signed in as %s (%s)\n", resp.Teacher.DisplayName(), resp.Teacher.Role)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if c.api.Token() != "" {
		if err := c.api.Logout(ctx); err != nil {
			c.app.Notifier.Error(fmt.Sprintf("Request failed: %v", err))
		}
	}
	if err := c.store.SaveToken(""); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	sess := c.openSession()
	defer sess.Close()
	if err := sess.SetTeacherID(""); err != nil {
		return fmt.Errorf("clear teacher id: %w", err)
	}
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func (c *cli) whoami() error {
	sess := c.openSession()
	defer sess.Close()
	c.printSession(sess.View())
	return nil
}

func (c *cli) use(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: use <teacherID>", errUsage)
	}
	sess := c.openSession()
	defer sess.Close()
	if err := sess.SetTeacherID(args[0]); err != nil {
		return fmt.Errorf("save teacher id: %w", err)
	}
	sess.Wait()
	c.printSession(sess.View())
	return nil
}

func (c *cli) printSession(v session.View) {
	switch {
	case v.TeacherID() == "":
		fmt.Fprintln(c.out, "not signed in")
	case v.TeacherName() == "":
		fmt.Fprintf(c.out, "%s (profile unavailable)\n", v.TeacherID())
	default:
		fmt.Fprintf(c.out, "%s %s\n", v.TeacherID(), v.TeacherName())
	}
}

// ────────────────────── Grids ──────────────────────

type gridFlags struct {
	filter string
	sort   string
	desc   bool
	page   int
}

func (g *gridFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.filter, "filter", "", "keep rows containing this text")
	fs.StringVar(&g.sort, "sort", "", "sort by column key")
	fs.BoolVar(&g.desc, "desc", false, "sort descending")
	fs.IntVar(&g.page, "page", 1, "page number")
}

// printGrid refreshes t, applies the grid flags and prints one page.
func printGrid[T any](ctx context.Context, w io.Writer, t *table.Table[T], g gridFlags) error {
	if err := t.Refresh(ctx); err != nil {
		return err
	}
	t.SetFilter(g.filter)
	if g.sort != "" {
		if !t.ToggleSort(g.sort) {
			return fmt.Errorf("%w: column %q is not sortable", errUsage, g.sort)
		}
		if g.desc {
			t.ToggleSort(g.sort)
		}
	}
	for t.Page()+1 < g.page {
		if !t.NextPage() {
			break
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	cols := t.Columns()
	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.Title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, row := range t.Visible() {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = col.Value(row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "page %d of %d, %d row(s)\n", t.Page()+1, t.PageCount(), len(t.Filtered()))
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func (c *cli) labs(ctx context.Context, args []string) error {
	view := c.app.Labs()
	sub, args := subcommand(args)

	switch sub {
	case "list":
		var g gridFlags
		fs := newFlagSet("labs list")
		g.register(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		return printGrid(ctx, c.out, view.Table, g)

	case "add":
		var f form.LabForm
		fs := newFlagSet("labs add")
		fs.StringVar(&f.Name, "name", "", "lab name")
		fs.StringVar(&f.Room, "room", "", "room")
		fs.IntVar(&f.ComputerSets, "sets", 0, "number of computer sets")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return view.Add(ctx, f)

	case "edit":
		if len(args) == 0 {
			return fmt.Errorf("%w: labs edit <id> [-name] [-room] [-sets]", errUsage)
		}
		if err := view.Table.Refresh(ctx); err != nil {
			return err
		}
		f, ok := view.Edit(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", console.ErrLabNotFound, args[0])
		}
		fs := newFlagSet("labs edit")
		fs.StringVar(&f.Name, "name", f.Name, "lab name")
		fs.StringVar(&f.Room, "room", f.Room, "room")
		fs.IntVar(&f.ComputerSets, "sets", f.ComputerSets, "number of computer sets")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return view.SaveEdit(ctx, f)

	case "delete":
		if len(args) == 0 {
			return fmt.Errorf("%w: labs delete <id>...", errUsage)
		}
		if err := view.Table.Refresh(ctx); err != nil {
			return err
		}
		ids := uniqueIDs(args)
		for _, id := range ids {
			view.Table.ToggleRow(id, true)
		}
		if view.Table.SelectedCount() != len(ids) {
			return fmt.Errorf("%w: some ids are not in the list", console.ErrLabNotFound)
		}
		return view.DeleteSelected(ctx)

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("%w: labs show <name>", errUsage)
		}
		lab, err := c.app.LabDetail(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "id:            %s\nname:          %s\nroom:          %s\ncomputer sets: %d\n",
			lab.ID, lab.Name, lab.Room, lab.ComputerSets)
		return nil
	}
	return fmt.Errorf("%w: labs %s", errUsage, sub)
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (c *cli) teachers(ctx context.Context, args []string) error {
	view := c.app.Teachers()
	sub, args := subcommand(args)

	switch sub {
	case "list":
		var g gridFlags
		fs := newFlagSet("teachers list")
		g.register(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		return printGrid(ctx, c.out, view.Table, g)

	case "add":
		var f form.TeacherForm
		fs := newFlagSet("teachers add")
		fs.StringVar(&f.FirstName, "first", "", "first name")
		fs.StringVar(&f.LastName, "last", "", "last name")
		fs.StringVar(&f.Email, "email", "", "email")
		fs.StringVar(&f.Password, "password", "", "initial password")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return view.Add(ctx, f)
	}
	return fmt.Errorf("%w: teachers %s", errUsage, sub)
}

func (c *cli) courses(ctx context.Context, args []string) error {
	view := c.app.Courses()
	sub, args := subcommand(args)

	switch sub {
	case "list":
		var g gridFlags
		fs := newFlagSet("courses list")
		g.register(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		return printGrid(ctx, c.out, view.Table, g)
	case "add":
		return view.Add(ctx, form.CourseForm{Course: strings.Join(args, " ")})
	}
	return fmt.Errorf("%w: courses %s", errUsage, sub)
}

func (c *cli) subjects(ctx context.Context, args []string) error {
	view := c.app.Subjects()
	sub, args := subcommand(args)

	switch sub {
	case "list":
		var g gridFlags
		fs := newFlagSet("subjects list")
		g.register(fs)
		if err := fs.Parse(args); err != nil {
			return err
		}
		return printGrid(ctx, c.out, view.Table, g)
	case "add":
		return view.Add(ctx, form.SubjectForm{Subject: strings.Join(args, " ")})
	}
	return fmt.Errorf("%w: subjects %s", errUsage, sub)
}

// ────────────────────── Schedule ──────────────────────

// parseWhen accepts RFC 3339 or "2006-01-02T15:04" in local time.
func parseWhen(s string) (time.Time, error) {
	if t, err := dto.ParseTime(s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}

func eventFlags(fs *flag.FlagSet, ev *scheduler.Event, start, end *string) {
	fs.StringVar(&ev.Title, "title", ev.Title, "title")
	fs.StringVar(start, "start", *start, "start (RFC 3339 or 2006-01-02T15:04)")
	fs.StringVar(end, "end", *end, "end (RFC 3339 or 2006-01-02T15:04)")
	fs.StringVar(&ev.TeacherName, "teacher", ev.TeacherName, "teacher name")
	fs.StringVar(&ev.Subject, "subject", ev.Subject, "subject")
	fs.StringVar(&ev.Course, "course", ev.Course, "course")
	fs.StringVar(&ev.Section, "section", ev.Section, "section, 1A to 4J")
	fs.StringVar(&ev.Subtitle, "subtitle", ev.Subtitle, "subtitle")
	fs.StringVar(&ev.ComLab, "lab", ev.ComLab, "computer lab")
}

func (c *cli) saveEvent(ctx context.Context, view *console.ScheduleView, ev scheduler.Event, action scheduler.Action, name string, args []string) error {
	start, end := "", ""
	if !ev.Start.IsZero() {
		start, end = dto.FormatTime(ev.Start), dto.FormatTime(ev.End)
	}
	fs := newFlagSet(name)
	eventFlags(fs, &ev, &start, &end)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if start != "" {
		if ev.Start, err = parseWhen(start); err != nil {
			return fmt.Errorf("%w: -start: %v", errUsage, err)
		}
	}
	if end != "" {
		if ev.End, err = parseWhen(end); err != nil {
			return fmt.Errorf("%w: -end: %v", errUsage, err)
		}
	}

	saved, err := view.Save(ctx, ev, action)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, saved.ID)
	return nil
}

func (c *cli) printEvents(events []scheduler.Event) error {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTART\tEND\tTITLE\tTEACHER\tSECTION\tLAB")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Start.Local().Format("Mon 2006-01-02 15:04"), e.End.Local().Format("15:04"),
			e.Title, e.TeacherName, e.Section, e.ComLab)
	}
	return tw.Flush()
}

func (c *cli) schedule(ctx context.Context, args []string) error {
	view := c.app.Schedule()
	sub, args := subcommand(args)

	switch sub {
	case "list":
		if err := view.LoadEvents(ctx); err != nil {
			return err
		}
		return c.printEvents(view.Events())

	case "week":
		fs := newFlagSet("schedule week")
		date := fs.String("date", time.Now().Format("2006-01-02"), "any day of the week")
		if err := fs.Parse(args); err != nil {
			return err
		}
		anchor, err := time.ParseInLocation("2006-01-02", *date, time.Local)
		if err != nil {
			return fmt.Errorf("%w: -date: %v", errUsage, err)
		}
		if err := view.LoadEvents(ctx); err != nil {
			return err
		}
		for _, col := range view.Week(anchor) {
			fmt.Fprintf(c.out, "%s\n", col.Date.Format("Monday 2006-01-02"))
			for _, e := range col.Events {
				fmt.Fprintf(c.out, "  %s-%s  %s  %s  %s\n",
					e.Start.Format("15:04"), e.End.Format("15:04"), e.Title, e.Section, e.ComLab)
			}
		}
		return nil

	case "add":
		view.Load(ctx)
		return c.saveEvent(ctx, view, scheduler.Event{}, scheduler.ActionCreate, "schedule add", args)

	case "edit":
		if len(args) == 0 {
			return fmt.Errorf("%w: schedule edit <id> [flags]", errUsage)
		}
		view.Load(ctx)
		ev, ok := view.Event(args[0])
		if !ok {
			return fmt.Errorf("event %s: %w", args[0], client.ErrNotFound)
		}
		return c.saveEvent(ctx, view, ev, scheduler.ActionEdit, "schedule edit", args[1:])

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("%w: schedule delete <id>", errUsage)
		}
		return view.Remove(ctx, args[0])

	case "export":
		fs := newFlagSet("schedule export")
		format := fs.String("format", "xlsx", "xlsx or ics")
		out := fs.String("out", "", "output file (default schedule.<format>)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		data, err := view.Export(ctx, *format)
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = "schedule." + *format
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintln(c.out, path)
		return nil

	case "import":
		var defaults dto.ICSImportRequest
		fs := newFlagSet("schedule import")
		file := fs.String("file", "", "iCalendar file to import")
		fs.StringVar(&defaults.TeacherName, "teacher", "", "teacher for events without one")
		fs.StringVar(&defaults.Subject, "subject", "", "subject for events without one")
		fs.StringVar(&defaults.Course, "course", "", "course for events without one")
		fs.StringVar(&defaults.Section, "section", "", "section for events without one")
		fs.StringVar(&defaults.ComLab, "lab", "", "computer lab for events without a LOCATION")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *file == "" {
			return fmt.Errorf("%w: schedule import -file <calendar.ics>", errUsage)
		}
		data, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("read %s: %w", *file, err)
		}
		result, err := view.Import(ctx, data, defaults)
		if err != nil {
			return err
		}
		for _, s := range result.Skipped {
			fmt.Fprintf(c.out, "skipped %s: %s\n", s.UID, s.Reason)
		}
		return nil
	}
	return fmt.Errorf("%w: schedule %s", errUsage, sub)
}

// ────────────────────── Routes ──────────────────────

func (c *cli) routes(args []string) error {
	if len(args) == 1 {
		r, params, ok := console.Resolve(args[0])
		if !ok {
			return fmt.Errorf("no page for %s", args[0])
		}
		fmt.Fprintf(c.out, "%s -> %s %v\n", r.Path, r.Page, params)
		return nil
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tPAGE\tADMIN")
	for _, r := range console.Routes {
		fmt.Fprintf(tw, "%s\t%s\t%t\n", r.Path, r.Page, r.Admin)
	}
	return tw.Flush()
}
