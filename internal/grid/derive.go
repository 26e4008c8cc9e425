package grid

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Status distinguishes why a derived view has no visible rows.
type Status int

const (
	StatusRows      Status = iota // at least one row survives filtering
	StatusEmptyData               // the input row list itself is empty
	StatusNoResults               // rows exist but the filter matched none
)

// View is the filtered, sorted and paginated projection of a row list.
type View[T any] struct {
	// Rows is the visible page.
	Rows []T
	// Filtered holds every row that passed the filter, in sorted order.
	Filtered []T

	Total     int
	PageIndex int
	PageSize  int
	PageCount int
	Status    Status
}

// FilteredCount is the number of rows across all pages.
func (v View[T]) FilteredCount() int { return len(v.Filtered) }

// CanPrev reports whether a previous page exists.
func (v View[T]) CanPrev() bool { return v.PageIndex > 0 }

// CanNext reports whether a following page exists.
func (v View[T]) CanNext() bool { return v.PageIndex+1 < v.PageCount }

// DisplayPageCount never reports zero pages, for "page 1 of 1" footers.
func (v View[T]) DisplayPageCount() int { return max(v.PageCount, 1) }

// FirstRow is the 1-based position of the first visible row, 0 when empty.
func (v View[T]) FirstRow() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.PageIndex*v.PageSize + 1
}

// LastRow is the 1-based position of the last visible row, 0 when empty.
func (v View[T]) LastRow() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.PageIndex*v.PageSize + len(v.Rows)
}

// DeriveView applies state to rows: filter, then sort, then paginate.
// rows is never reordered. A page index past the last page is clamped, so a
// non-empty result always shows a non-empty page.
func DeriveView[T any](rows []T, cols []Column[T], state ViewState) View[T] {
	size := state.PageSize
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	filtered := Filter(rows, cols, state.Filter)
	SortRows(filtered, cols, state.Sort)

	count := len(filtered)
	pages := PageCount(count, size)
	idx := ClampPage(state.PageIndex, pages)

	start := min(idx*size, count)
	end := min(start+size, count)

	v := View[T]{
		Rows:      filtered[start:end:end],
		Filtered:  filtered,
		Total:     len(rows),
		PageIndex: idx,
		PageSize:  size,
		PageCount: pages,
	}
	switch {
	case len(rows) == 0:
		v.Status = StatusEmptyData
	case count == 0:
		v.Status = StatusNoResults
	}
	return v
}

// PageCount is ceil(count/size); zero rows give zero pages.
func PageCount(count, size int) int {
	if size <= 0 || count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// ClampPage limits idx to [0, pages-1], never below 0.
func ClampPage(idx, pages int) int {
	if idx > pages-1 {
		idx = pages - 1
	}
	return max(idx, 0)
}

// Filter returns, in input order, the rows for which Matches holds. The
// result is always a fresh slice.
func Filter[T any](rows []T, cols []Column[T], text string) []T {
	needle := normalizeSpace(text)
	if needle == "" {
		return slices.Clone(rows)
	}
	fold := cases.Fold()
	needle = fold.String(needle)
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(fold, row, cols, needle) {
			out = append(out, row)
		}
	}
	return out
}

// Matches reports whether any column value of row contains text, comparing
// whitespace-normalized, case-folded strings. Empty text matches every row.
func Matches[T any](row T, cols []Column[T], text string) bool {
	needle := normalizeSpace(text)
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return matches(fold, row, cols, fold.String(needle))
}

func matches[T any](fold cases.Caser, row T, cols []Column[T], needle string) bool {
	for _, c := range cols {
		v := c.ValueOf(row)
		if isMissing(v) {
			continue
		}
		if strings.Contains(fold.String(normalizeSpace(Text(v))), needle) {
			return true
		}
	}
	return false
}

// SortRows stably sorts rows in place by specs. Missing values (nil, or a nil
// pointer, map, slice or interface) sort
// last in both directions. Specs naming unknown columns are skipped.
func SortRows[T any](rows []T, cols []Column[T], specs []SortSpec) {
	type sortKey struct {
		col  Column[T]
		desc bool
	}
	keys := make([]sortKey, 0, len(specs))
	for _, spec := range specs {
		if c, ok := columnByID(cols, spec.Column); ok {
			keys = append(keys, sortKey{col: c, desc: spec.Desc})
		}
	}
	if len(keys) == 0 || len(rows) < 2 {
		return
	}

	type entry struct {
		row    T
		values []any
	}
	entries := make([]entry, len(rows))
	for i, row := range rows {
		values := make([]any, len(keys))
		for k, key := range keys {
			values[k] = key.col.ValueOf(row)
		}
		entries[i] = entry{row: row, values: values}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		for k, key := range keys {
			va, vb := a.values[k], b.values[k]
			ma, mb := isMissing(va), isMissing(vb)
			switch {
			case ma && mb:
				continue
			case ma:
				return 1
			case mb:
				return -1
			}
			c := CompareValues(va, vb)
			if key.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	for i, e := range entries {
		rows[i] = e.row
	}
}

// CompareValues orders two non-nil column values. Numbers compare
// numerically, times chronologically, bools false first, everything else by
// case-folded text with a byte-wise tie break.
func CompareValues(a, b any) int {
	a, b = indirect(a), indirect(b)
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			}
			return 1
		}
	}
	sa, sb := Text(a), Text(b)
	fold := cases.Fold()
	if c := strings.Compare(fold.String(sa), fold.String(sb)); c != 0 {
		return c
	}
	return strings.Compare(sa, sb)
}

// Text is the display string of a column value; missing values are the empty
// string. Floats never use exponent notation.
func Text(v any) string {
	if isMissing(v) {
		return ""
	}
	v = indirect(v)
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	return fmt.Sprint(v)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isMissing reports whether v is nil or a nil reference held in an interface.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// indirect follows non-nil pointers to the value they hold. A pointer whose
// String method is lost by dereferencing is kept as is.
func indirect(v any) any {
	for {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return v
		}
		elem := rv.Elem().Interface()
		if _, ok := v.(fmt.Stringer); ok {
			if _, ok := elem.(fmt.Stringer); !ok {
				return v
			}
		}
		v = elem
	}
}

// toFloat accepts every integer and float kind, named types included, so a
// type like "type Cents int64" with its own String method still sorts
// numerically.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
