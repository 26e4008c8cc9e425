// Package grid implements a generic sortable, filterable, paginated data grid
// with CSV export.
//
// The grid never inspects row values itself. Every value is produced by a
// Column accessor: either a static key looked up through the Record
// capability, or a derivation function. The whole filter, sort and paginate
// pipeline is the pure function DeriveView, so it can be exercised without
// rendering anything.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// ErrInvalidColumn reports a column set that cannot be used by a grid.
var ErrInvalidColumn = errors.New("invalid column definition")

// Record is implemented by rows that expose their attributes by key. Only
// columns using a static Key accessor need it.
type Record interface {
	Field(key string) any
}

// Column describes how one grid column extracts, labels and renders a value.
//
// Exactly one of Key and Value must be set.
type Column[T any] struct {
	// ID identifies the column in sort state and URLs. Defaults to Key, then
	// to the lowercased Header.
	ID string

	// Header is the plain text label, also used as the CSV header.
	Header string

	// HeaderCell replaces Header on screen. Component-only headers are
	// exported to CSV as an empty string.
	HeaderCell templ.Component

	// Key reads the value through Record.Field.
	Key string

	// Value derives the value from the row.
	Value func(row T) any

	// Cell renders the value on screen. Without it the value is shown as text.
	Cell func(value any, row T) templ.Component

	// NoSort removes the sort affordance (e.g. an actions column).
	NoSort bool
}

// ValueOf returns the computed value of the column for row. A nil result is
// treated as a missing value by sorting and export.
func (c Column[T]) ValueOf(row T) any {
	if c.Value != nil {
		return c.Value(row)
	}
	if r, ok := any(row).(Record); ok {
		return r.Field(c.Key)
	}
	return nil
}

// Sortable reports whether the header may toggle sorting.
func (c Column[T]) Sortable() bool { return !c.NoSort }

// ExportHeader is the CSV header text of the column.
func (c Column[T]) ExportHeader() string { return c.Header }

// Normalize validates a column set and fills in derived IDs. The input slice
// is not modified.
func Normalize[T any](cols []Column[T]) ([]Column[T], error) {
	_, isRecord := any(*new(T)).(Record)
	out := make([]Column[T], 0, len(cols))
	seen := make(map[string]int, len(cols))
	for i, c := range cols {
		hasKey, hasFn := c.Key != "", c.Value != nil
		switch {
		case hasKey && hasFn:
			return nil, fmt.Errorf("%w: column %d sets both key %q and a value func", ErrInvalidColumn, i, c.Key)
		case !hasKey && !hasFn:
			return nil, fmt.Errorf("%w: column %d has no accessor", ErrInvalidColumn, i)
		case hasKey && !isRecord:
			return nil, fmt.Errorf("%w: column %d uses key %q but %T does not implement Record", ErrInvalidColumn, i, c.Key, *new(T))
		}
		if c.ID == "" {
			if hasKey {
				c.ID = c.Key
			} else {
				c.ID = headerID(c.Header)
			}
		}
		if c.ID == "" {
			return nil, fmt.Errorf("%w: column %d needs an explicit id", ErrInvalidColumn, i)
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("%w: columns %d and %d share id %q", ErrInvalidColumn, prev, i, c.ID)
		}
		seen[c.ID] = i
		out = append(out, c)
	}
	return out, nil
}

func headerID(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), "_"))
}

func columnByID[T any](cols []Column[T], id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}
