package grid

import (
	"io"
)

// Grid binds a row list and a column set to a mutable ViewState. It is the
// stateful counterpart of DeriveView: every operation mutates the state the
// way a user interaction would, and View recomputes the projection.
//
// A Grid is not safe for concurrent use.
type Grid[T any] struct {
	Title string

	// OnRowClick, when set, receives the full row of an activated body row.
	OnRowClick func(row T)

	rows  []T
	cols  []Column[T]
	state ViewState
}

// New validates cols and returns a grid on its first page with no filter
// and no sorting.
func New[T any](title string, rows []T, cols []Column[T]) (*Grid[T], error) {
	normalized, err := Normalize(cols)
	if err != nil {
		return nil, err
	}
	return &Grid[T]{
		Title: title,
		rows:  rows,
		cols:  normalized,
		state: NewViewState(),
	}, nil
}

// Columns returns the normalized column set.
func (g *Grid[T]) Columns() []Column[T] { return g.cols }

// State returns the current view state.
func (g *Grid[T]) State() ViewState { return g.state.clone() }

// Restore replaces the state wholesale, e.g. from a URL. Sorting on unknown
// or unsortable columns is dropped, an invalid page size falls back to the
// current one and the page index is clamped.
func (g *Grid[T]) Restore(st ViewState) {
	next := g.state.clone()
	next.Filter = st.Filter
	next.Sort = nil
	for _, spec := range st.Sort {
		if c, ok := columnByID(g.cols, spec.Column); ok && c.Sortable() {
			next.Sort = []SortSpec{spec}
			break
		}
	}
	if ValidPageSize(st.PageSize) {
		next.PageSize = st.PageSize
	}
	next.PageIndex = st.PageIndex
	g.state = next
	g.clamp()
}

// SetRows swaps the row list, keeping the state but re-clamping the page.
func (g *Grid[T]) SetRows(rows []T) {
	g.rows = rows
	g.clamp()
}

// SetGlobalFilter changes the filter text and returns to the first page.
func (g *Grid[T]) SetGlobalFilter(text string) {
	g.state = g.state.WithFilter(text)
}

// ToggleSort cycles the sort of column id. Unknown columns and columns
// without a sort affordance are ignored.
func (g *Grid[T]) ToggleSort(id string) {
	c, ok := columnByID(g.cols, id)
	if !ok || !c.Sortable() {
		return
	}
	g.state = g.state.Toggled(id)
}

// SetPageIndex moves to page n, clamped to the existing pages.
func (g *Grid[T]) SetPageIndex(n int) {
	g.state = g.state.WithPage(n)
	g.clamp()
}

// SetPageSize switches the page size. Sizes outside PageSizes are ignored
// silently and the previous size stays in effect.
func (g *Grid[T]) SetPageSize(n int) {
	g.state = g.state.WithPageSize(n)
}

// NextPage advances one page when possible.
func (g *Grid[T]) NextPage() {
	if g.View().CanNext() {
		g.SetPageIndex(g.state.PageIndex + 1)
	}
}

// PrevPage goes back one page when possible.
func (g *Grid[T]) PrevPage() {
	if g.state.PageIndex > 0 {
		g.SetPageIndex(g.state.PageIndex - 1)
	}
}

// View derives the current projection.
func (g *Grid[T]) View() View[T] {
	return DeriveView(g.rows, g.cols, g.state)
}

// RowClick activates the i-th row of the visible page. It reports false when
// no callback is set or i is out of range.
func (g *Grid[T]) RowClick(i int) bool {
	rows := g.View().Rows
	if g.OnRowClick == nil || i < 0 || i >= len(rows) {
		return false
	}
	g.OnRowClick(rows[i])
	return true
}

// Records returns the export records of every filtered row in sorted order,
// header first.
func (g *Grid[T]) Records() [][]string {
	return Records(g.View().Filtered, g.cols)
}

// ExportCSV writes the filtered and sorted rows (all pages) as CSV.
func (g *Grid[T]) ExportCSV(w io.Writer, mode CSVMode) error {
	return WriteCSV(w, g.Records(), mode)
}

// FileName is the CSV download name for the grid title.
func (g *Grid[T]) FileName() string { return CSVFileName(g.Title) }

func (g *Grid[T]) clamp() {
	size := g.state.PageSize
	if !ValidPageSize(size) {
		size = DefaultPageSize
		g.state.PageSize = size
	}
	count := len(Filter(g.rows, g.cols, g.state.Filter))
	g.state.PageIndex = ClampPage(g.state.PageIndex, PageCount(count, size))
}
