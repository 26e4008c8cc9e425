package grid

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Query parameter names carrying a ViewState in page links.
const (
	ParamFilter = "q"
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamPage   = "page"
	ParamSize   = "size"
)

// ParseState reads a ViewState from query values. The page parameter is
// 1-based. Malformed numbers and page sizes outside PageSizes fall back to
// the defaults of a fresh grid.
func ParseState(q url.Values) ViewState {
	st := NewViewState()
	st.Filter = q.Get(ParamFilter)
	if col := strings.TrimSpace(q.Get(ParamSort)); col != "" {
		st.Sort = []SortSpec{{Column: col, Desc: q.Get(ParamDir) == Descending.String()}}
	}
	if n, err := strconv.Atoi(q.Get(ParamSize)); err == nil {
		st = st.WithPageSize(n)
	}
	if n, err := strconv.Atoi(q.Get(ParamPage)); err == nil {
		st.PageIndex = max(n-1, 0)
	}
	return st
}

// Values encodes s for a link, omitting defaults.
func (s ViewState) Values() url.Values {
	q := url.Values{}
	if s.Filter != "" {
		q.Set(ParamFilter, s.Filter)
	}
	if len(s.Sort) > 0 {
		q.Set(ParamSort, s.Sort[0].Column)
		if s.Sort[0].Desc {
			q.Set(ParamDir, Descending.String())
		} else {
			q.Set(ParamDir, Ascending.String())
		}
	}
	if s.PageIndex > 0 {
		q.Set(ParamPage, strconv.Itoa(s.PageIndex+1))
	}
	if s.PageSize != 0 && s.PageSize != DefaultPageSize {
		q.Set(ParamSize, strconv.Itoa(s.PageSize))
	}
	return q
}

// Href returns path with s encoded as its query string.
func (s ViewState) Href(path string) string {
	enc := s.Values().Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}

// Header is the render model of one column header.
type Header struct {
	ID        string
	Label     string
	Component templ.Component
	Sortable  bool
	Direction Direction
	// Toggle is the state reached by clicking the header.
	Toggle ViewState
}

// Headers describes the header row for the current state.
func (g *Grid[T]) Headers() []Header {
	out := make([]Header, len(g.cols))
	for i, c := range g.cols {
		h := Header{
			ID:        c.ID,
			Label:     c.Header,
			Component: c.HeaderCell,
			Sortable:  c.Sortable(),
		}
		if h.Sortable {
			h.Direction = g.state.Direction(c.ID)
			h.Toggle = g.state.Toggled(c.ID)
		}
		out[i] = h
	}
	return out
}
