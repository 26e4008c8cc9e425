package templates

import (
	"context"
	"html/template"
	"net/url"

	"github.com/a-h/templ"

	"github.com/csg33k/masterdash/internal/grid"
)

// Table is the render model of a grid page.
type Table struct {
	Title  string
	Path   string
	Filter string
	// Carry holds the state kept when the filter form is submitted.
	Carry []Hidden
	// CarryAll holds the state kept when the page size form is submitted.
	CarryAll []Hidden

	Headers []HeaderView
	Rows    []RowView

	EmptyData bool
	NoResults bool

	Page      int
	PageCount int
	From, To  int
	Filtered  int
	Total     int
	CanPrev   bool
	CanNext   bool
	PrevHref  string
	NextHref  string
	Sizes     []SizeOption

	CSVHref string
	PDFHref string
	AddHref string
}

// Hidden is a hidden form input.
type Hidden struct{ Name, Value string }

type HeaderView struct {
	Label     template.HTML
	Sortable  bool
	Indicator string
	Href      string
}

type RowView struct {
	Href  string
	Cells []template.HTML
}

type SizeOption struct {
	Size     int
	Selected bool
}

var indicators = map[grid.Direction]string{
	grid.Unsorted:   "↕",
	grid.Ascending:  "▲",
	grid.Descending: "▼",
}

// BuildTable renders the current page of g. Cells with a renderer are
// rendered through templ; everything else is escaped text. rowHref may be
// nil when rows are not clickable.
func BuildTable[T any](ctx context.Context, g *grid.Grid[T], path string, rowHref func(T) string) (Table, error) {
	st := g.State()
	v := g.View()
	cols := g.Columns()

	t := Table{
		Title:     g.Title,
		Path:      path,
		Filter:    st.Filter,
		EmptyData: v.Status == grid.StatusEmptyData,
		NoResults: v.Status == grid.StatusNoResults,
		Page:      v.PageIndex + 1,
		PageCount: v.DisplayPageCount(),
		From:      v.FirstRow(),
		To:        v.LastRow(),
		Filtered:  v.FilteredCount(),
		Total:     v.Total,
		CanPrev:   v.CanPrev(),
		CanNext:   v.CanNext(),
		PrevHref:  st.WithPage(v.PageIndex - 1).Href(path),
		NextHref:  st.WithPage(v.PageIndex + 1).Href(path),
		CSVHref:   st.Href(path + "/export.csv"),
		PDFHref:   st.Href(path + "/export.pdf"),
	}

	t.Carry = hidden(st.WithFilter("").Values())
	withoutSize := st.WithFilter(st.Filter)
	withoutSize.PageSize = grid.DefaultPageSize
	t.CarryAll = hidden(withoutSize.Values())

	for _, n := range grid.PageSizes {
		t.Sizes = append(t.Sizes, SizeOption{Size: n, Selected: n == st.PageSize})
	}

	for _, h := range g.Headers() {
		hv := HeaderView{Label: template.HTML(template.HTMLEscapeString(h.Label)), Sortable: h.Sortable}
		if h.Component != nil {
			label, err := templ.ToGoHTML(ctx, h.Component)
			if err != nil {
				return t, err
			}
			hv.Label = label
		}
		if h.Sortable {
			hv.Indicator = indicators[h.Direction]
			hv.Href = h.Toggle.Href(path)
		}
		t.Headers = append(t.Headers, hv)
	}

	for _, row := range v.Rows {
		rv := RowView{Cells: make([]template.HTML, len(cols))}
		if rowHref != nil {
			rv.Href = rowHref(row)
		}
		for i, c := range cols {
			val := c.ValueOf(row)
			if c.Cell == nil {
				rv.Cells[i] = template.HTML(template.HTMLEscapeString(grid.Text(val)))
				continue
			}
			cell, err := templ.ToGoHTML(ctx, c.Cell(val, row))
			if err != nil {
				return t, err
			}
			rv.Cells[i] = cell
		}
		t.Rows = append(t.Rows, rv)
	}
	return t, nil
}

func hidden(q url.Values) []Hidden {
	var out []Hidden
	for _, k := range []string{grid.ParamFilter, grid.ParamSort, grid.ParamDir, grid.ParamPage, grid.ParamSize} {
		if v := q.Get(k); v != "" {
			out = append(out, Hidden{Name: k, Value: v})
		}
	}
	return out
}
