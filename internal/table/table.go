// Package table is the state behind the admin grids: a list that is
// always an image of the last successful fetch, with a name filter,
// single-column sorting, pagination and row selection on top.
package table

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultPageSize is used when Config.PageSize is zero.
const DefaultPageSize = 10

// Messages shown after a batch delete.
const (
	msgBatchDeleted = "%d data/s has been deleted."
	msgUnknownError = "Unknown error has occurred"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Validator checks a form before it is submitted.
type Validator interface {
	Validate(ctx context.Context, form interface{}) error
}

// Column describes one grid column.
type Column[T any] struct {
	Key      string
	Title    string
	Value    func(T) string
	Sortable bool
	// Compare overrides string ordering, e.g. for numeric columns.
	Compare func(a, b T) int
}

// Config wires a Table.
type Config[T any] struct {
	Fetch        func(ctx context.Context) ([]T, error)
	Key          func(T) string
	Columns      []Column[T]
	FilterColumn string
	PageSize     int
	Notifier     Notifier
	Logger       *zap.Logger
}

// HeaderState is the tri-state of the "select all" checkbox.
type HeaderState int

const (
	CheckNone HeaderState = iota
	CheckSome
	CheckAll
)

func (h HeaderState) String() string {
	switch h {
	case CheckAll:
		return "all"
	case CheckSome:
		return "some"
	default:
		return "none"
	}
}

// Table is safe for concurrent use.
type Table[T any] struct {
	cfg Config[T]

	mu       sync.Mutex
	rows     []T
	filter   string
	sortKey  string
	sortDesc bool
	page     int
	selected map[string]bool
}

// New builds a Table. It holds no rows until Refresh.
func New[T any](cfg Config[T]) *Table[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Table[T]{cfg: cfg, selected: make(map[string]bool)}
}

// ────────────────────── Data ──────────────────────

// Refresh replaces the rows with a fresh fetch. On failure the previous
// rows stay and the error is returned.
func (t *Table[T]) Refresh(ctx context.Context) error {
	rows, err := t.cfg.Fetch(ctx)
	if err != nil {
		t.cfg.Logger.Error("fetch list failed", zap.Error(err))
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.clampPageLocked()
	return nil
}

// Rows returns every row of the last fetch, unfiltered and unsorted.
func (t *Table[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.rows...)
}

// Len is the number of fetched rows.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Columns returns the configured columns.
func (t *Table[T]) Columns() []Column[T] {
	return t.cfg.Columns
}

// Filtered returns the filtered and sorted rows across all pages.
func (t *Table[T]) Filtered() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filteredLocked()
}

// Visible returns the rows of the current page.
func (t *Table[T]) Visible() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pageRowsLocked()
}

// Edit returns the row with key so a form can be pre-filled with it.
func (t *Table[T]) Edit(key string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if t.cfg.Key(r) == key {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// ────────────────────── Filter & sort ──────────────────────

// SetFilter keeps rows whose filter column contains s (case-sensitive).
// The first page is shown afterwards.
func (t *Table[T]) SetFilter(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = s
	t.page = 0
}

// Filter returns the current filter text.
func (t *Table[T]) Filter() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.filter
}

// ToggleSort sorts by key: ascending on first use, then flipping. It
// reports false for unknown or unsortable columns.
func (t *Table[T]) ToggleSort(key string) bool {
	col, ok := t.column(key)
	if !ok || !col.Sortable {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sortKey == key {
		t.sortDesc = !t.sortDesc
	} else {
		t.sortKey, t.sortDesc = key, false
	}
	return true
}

// SortState returns the sort column ("" when unsorted) and direction.
func (t *Table[T]) SortState() (key string, desc bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sortKey, t.sortDesc
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.cfg.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

func (t *Table[T]) filteredLocked() []T {
	out := make([]T, 0, len(t.rows))
	filterCol, hasFilter := t.column(t.cfg.FilterColumn)
	for _, r := range t.rows {
		if t.filter != "" && hasFilter && !strings.Contains(filterCol.Value(r), t.filter) {
			continue
		}
		out = append(out, r)
	}

	if col, ok := t.column(t.sortKey); ok {
		cmp := col.Compare
		if cmp == nil {
			cmp = func(a, b T) int { return strings.Compare(col.Value(a), col.Value(b)) }
		}
		desc := t.sortDesc
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return cmp(out[i], out[j]) > 0
			}
			return cmp(out[i], out[j]) < 0
		})
	}
	return out
}

// ────────────────────── Pagination ──────────────────────

// Page is the zero-based current page.
func (t *Table[T]) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// PageCount is at least 1.
func (t *Table[T]) PageCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pageCountLocked()
}

// CanNextPage reports whether NextPage would move.
func (t *Table[T]) CanNextPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page < t.pageCountLocked()-1
}

// CanPreviousPage reports whether PreviousPage would move.
func (t *Table[T]) CanPreviousPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page > 0
}

// NextPage advances one page if possible.
func (t *Table[T]) NextPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.page >= t.pageCountLocked()-1 {
		return false
	}
	t.page++
	return true
}

// PreviousPage goes back one page if possible.
func (t *Table[T]) PreviousPage() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.page == 0 {
		return false
	}
	t.page--
	return true
}

func (t *Table[T]) pageCountLocked() int {
	n := len(t.filteredLocked())
	if n == 0 {
		return 1
	}
	return (n + t.cfg.PageSize - 1) / t.cfg.PageSize
}

func (t *Table[T]) clampPageLocked() {
	if last := t.pageCountLocked() - 1; t.page > last {
		t.page = last
	}
}

func (t *Table[T]) pageRowsLocked() []T {
	rows := t.filteredLocked()
	start := t.page * t.cfg.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + t.cfg.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ────────────────────── Selection ──────────────────────

// ToggleRow selects or deselects the row with key.
func (t *Table[T]) ToggleRow(key string, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if on {
		t.selected[key] = true
	} else {
		delete(t.selected, key)
	}
}

// ToggleAllPageRows selects or deselects every row on the current page.
func (t *Table[T]) ToggleAllPageRows(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.pageRowsLocked() {
		if on {
			t.selected[t.cfg.Key(r)] = true
		} else {
			delete(t.selected, t.cfg.Key(r))
		}
	}
}

// IsSelected reports whether the row with key is selected.
func (t *Table[T]) IsSelected(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected[key]
}

// HeaderState summarises the selection on the current page.
func (t *Table[T]) HeaderState() HeaderState {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := t.pageRowsLocked()
	n := 0
	for _, r := range rows {
		if t.selected[t.cfg.Key(r)] {
			n++
		}
	}
	switch {
	case n == 0:
		return CheckNone
	case n == len(rows):
		return CheckAll
	default:
		return CheckSome
	}
}

// Selected returns the selected rows in fetch order.
func (t *Table[T]) Selected() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selectedLocked()
}

// SelectedCount is the number of selected keys.
func (t *Table[T]) SelectedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.selected)
}

// ClearSelection deselects everything.
func (t *Table[T]) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selected = make(map[string]bool)
}

// Summary is the footer line, e.g. "2 of 7 row(s) selected.".
func (t *Table[T]) Summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := t.filteredLocked()
	n := 0
	for _, r := range filtered {
		if t.selected[t.cfg.Key(r)] {
			n++
		}
	}
	return fmt.Sprintf("%d of %d row(s) selected.", n, len(filtered))
}

func (t *Table[T]) selectedLocked() []T {
	var out []T
	for _, r := range t.rows {
		if t.selected[t.cfg.Key(r)] {
			out = append(out, r)
		}
	}
	return out
}

// ────────────────────── Mutations ──────────────────────

// BatchDelete calls del once per selected row, in order, without stopping
// at the first failure. One notification covers the batch. The list is
// then refetched and the selection cleared whatever the outcome.
func (t *Table[T]) BatchDelete(ctx context.Context, del func(ctx context.Context, row T) error) error {
	rows := t.Selected()

	var errs []error
	for _, r := range rows {
		if err := del(ctx, r); err != nil {
			t.cfg.Logger.Error("delete row failed", zap.String("key", t.cfg.Key(r)), zap.Error(err))
			errs = append(errs, fmt.Errorf("delete %s: %w", t.cfg.Key(r), err))
		}
	}
	err := errors.Join(errs...)

	if err != nil {
		t.notifyError(msgUnknownError)
	} else {
		t.notifyInfo(fmt.Sprintf(msgBatchDeleted, len(rows)))
	}

	_ = t.Refresh(ctx)
	t.ClearSelection()
	return err
}

// Submit validates form and, only if it is valid, runs mutate. A
// successful mutation is announced with successMsg and followed by a
// refetch. Validation failures come back as *form.Errors.
func (t *Table[T]) Submit(ctx context.Context, form interface{}, v Validator, mutate func(ctx context.Context) error, successMsg string) error {
	if v != nil {
		if err := v.Validate(ctx, form); err != nil {
			return err
		}
	}

	if err := mutate(ctx); err != nil {
		t.cfg.Logger.Error("submit failed", zap.Error(err))
		t.notifyError(fmt.Sprintf("Request failed: %v", err))
		return err
	}

	t.notifySuccess(successMsg)
	_ = t.Refresh(ctx)
	return nil
}

func (t *Table[T]) notifySuccess(msg string) {
	if t.cfg.Notifier != nil {
		t.cfg.Notifier.Success(msg)
	}
}

func (t *Table[T]) notifyInfo(msg string) {
	if t.cfg.Notifier != nil {
		t.cfg.Notifier.Info(msg)
	}
}

func (t *Table[T]) notifyError(msg string) {
	if t.cfg.Notifier != nil {
		t.cfg.Notifier.Error(msg)
	}
}
