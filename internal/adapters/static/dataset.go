// Package static serves the master datasets bundled into the binary.
//
// The JSON files may carry comments; they are stripped with jsonc before
// decoding. Data is parsed once by New and never changes afterwards.
package static

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/jsonc"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/ports"
)

//go:embed data/*.jsonc
var files embed.FS

// Dataset holds every bundled entity list.
type Dataset struct {
	employees *Table[domain.Employee]
	customers *Table[domain.Customer]
}

// New parses the embedded datasets.
func New() (*Dataset, error) {
	var emp struct {
		Employees []domain.Employee `json:"employees"`
	}
	if err := decode("data/employees.jsonc", &emp); err != nil {
		return nil, err
	}
	var cust struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := decode("data/customers.jsonc", &cust); err != nil {
		return nil, err
	}
	return FromRows(emp.Employees, cust.Customers), nil
}

// FromRows builds a dataset from in-memory rows.
func FromRows(employees []domain.Employee, customers []domain.Customer) *Dataset {
	return &Dataset{
		employees: NewTable(employees, func(e domain.Employee) string { return e.ID }),
		customers: NewTable(customers, func(c domain.Customer) string { return c.ID }),
	}
}

func (d *Dataset) Employees() ports.Lookup[domain.Employee] { return d.employees }
func (d *Dataset) Customers() ports.Lookup[domain.Customer] { return d.customers }

func decode(name string, v any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonc.ToJSON(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Table is an immutable row list addressed by a string ID.
type Table[T any] struct {
	rows []T
	id   func(T) string
}

// NewTable wraps rows; id extracts the identifier matched by FindByID.
func NewTable[T any](rows []T, id func(T) string) *Table[T] {
	return &Table[T]{rows: slices.Clone(rows), id: id}
}

// ListAll returns a copy of every row in dataset order.
func (t *Table[T]) ListAll(context.Context) ([]T, error) {
	return slices.Clone(t.rows), nil
}

// FindByID returns the first row whose ID equals id.
func (t *Table[T]) FindByID(_ context.Context, id string) (T, error) {
	for _, row := range t.rows {
		if t.id(row) == id {
			return row, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%q: %w", id, domain.ErrNotFound)
}
