package grid

import "slices"

// PageSizes are the page sizes a grid accepts, in selector order.
var PageSizes = []int{5, 10, 20, 50}

// DefaultPageSize is the page size of a freshly mounted grid.
const DefaultPageSize = 10

// Direction is the sort state of a single column.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return ""
}

// SortSpec orders rows by one column.
type SortSpec struct {
	Column string
	Desc   bool
}

// ViewState is the filter, sort and pagination configuration of a grid.
// Sort holds at most one entry; Toggled never produces more.
type ViewState struct {
	Filter    string
	Sort      []SortSpec
	PageIndex int
	PageSize  int
}

// NewViewState returns the state of a freshly mounted grid.
func NewViewState() ViewState {
	return ViewState{PageSize: DefaultPageSize}
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// Direction returns the sort direction currently applied to column id.
func (s ViewState) Direction(id string) Direction {
	for _, spec := range s.Sort {
		if spec.Column == id {
			if spec.Desc {
				return Descending
			}
			return Ascending
		}
	}
	return Unsorted
}

// Toggled cycles column id through unsorted, ascending and descending.
// Any other sorted column is cleared and the page index resets.
func (s ViewState) Toggled(id string) ViewState {
	next := s
	next.PageIndex = 0
	switch s.Direction(id) {
	case Unsorted:
		next.Sort = []SortSpec{{Column: id}}
	case Ascending:
		next.Sort = []SortSpec{{Column: id, Desc: true}}
	default:
		next.Sort = nil
	}
	return next
}

// WithFilter sets the global filter text and returns to the first page.
func (s ViewState) WithFilter(text string) ViewState {
	next := s.clone()
	next.Filter = text
	next.PageIndex = 0
	return next
}

// WithPageSize switches to page size n and returns to the first page.
// A size outside PageSizes leaves the state unchanged.
func (s ViewState) WithPageSize(n int) ViewState {
	if !ValidPageSize(n) || n == s.PageSize {
		return s.clone()
	}
	next := s.clone()
	next.PageSize = n
	next.PageIndex = 0
	return next
}

// WithPage moves to page index i without clamping; DeriveView clamps.
func (s ViewState) WithPage(i int) ViewState {
	next := s.clone()
	next.PageIndex = max(i, 0)
	return next
}

func (s ViewState) clone() ViewState {
	next := s
	next.Sort = slices.Clone(s.Sort)
	return next
}
