package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/dto"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/form"
	"github.com/toriojohn/Computer-Lab-Attendance-and-Monitoring-System/internal/table"
)

// LabsView is the computer management grid.
type LabsView struct {
	app   *App
	Table *table.Table[dto.LabResponse]
}

// Labs builds the computer management view. Call Table.Refresh to load it.
func (a *App) Labs() *LabsView {
	return &LabsView{
		app: a,
		Table: table.New(table.Config[dto.LabResponse]{
			Fetch: a.API.ListLabs,
			Key:   func(l dto.LabResponse) string { return l.ID },
			Columns: []table.Column[dto.LabResponse]{
				{Key: "id", Title: "ID", Value: func(l dto.LabResponse) string { return l.ID }},
				{Key: "name", Title: "Name", Value: func(l dto.LabResponse) string { return l.Name }, Sortable: true},
				{Key: "room", Title: "Room", Value: func(l dto.LabResponse) string { return l.Room }, Sortable: true},
				{
					Key: "computer_sets", Title: "Computer sets", Sortable: true,
					Value:   func(l dto.LabResponse) string { return strconv.Itoa(l.ComputerSets) },
					Compare: func(x, y dto.LabResponse) int { return x.ComputerSets - y.ComputerSets },
				},
			},
			FilterColumn: "name",
			PageSize:     a.PageSize,
			Notifier:     a.Notifier,
			Logger:       a.logger("labs"),
		}),
	}
}

// Add creates a lab from f.
func (v *LabsView) Add(ctx context.Context, f form.LabForm) error {
	return v.Table.Submit(ctx, f, v.app.Validate, func(ctx context.Context) error {
		return v.app.API.AddLab(ctx, labRequest(f))
	}, "Added successfully")
}

// Edit pre-fills a form with the lab's current values.
func (v *LabsView) Edit(id string) (form.LabForm, bool) {
	lab, ok := v.Table.Edit(id)
	if !ok {
		return form.LabForm{}, false
	}
	return form.LabForm{ID: lab.ID, Name: lab.Name, Room: lab.Room, ComputerSets: lab.ComputerSets}, true
}

// SaveEdit sends an edited form for the lab f.ID.
func (v *LabsView) SaveEdit(ctx context.Context, f form.LabForm) error {
	if f.ID == "" {
		return fmt.Errorf("edit lab: %w", ErrLabNotFound)
	}
	return v.Table.Submit(ctx, f, v.app.Validate, func(ctx context.Context) error {
		return v.app.API.EditLab(ctx, f.ID, labRequest(f))
	}, "Edited successfully")
}

// DeleteSelected deletes every selected lab.
func (v *LabsView) DeleteSelected(ctx context.Context) error {
	return v.Table.BatchDelete(ctx, func(ctx context.Context, l dto.LabResponse) error {
		return v.app.API.DeleteLab(ctx, l.ID)
	})
}

// LabDetail looks a lab up by its display name, as linked from the grid.
func (a *App) LabDetail(ctx context.Context, name string) (*dto.LabResponse, error) {
	labs, err := a.API.ListLabs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range labs {
		if labs[i].Name == name {
			return &labs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLabNotFound, name)
}

func labRequest(f form.LabForm) *dto.LabRequest {
	return &dto.LabRequest{Name: f.Name, Room: f.Room, ComputerSets: f.ComputerSets}
}
