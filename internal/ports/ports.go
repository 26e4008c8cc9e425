package ports

import (
	"context"
	"io"

	"github.com/csg33k/masterdash/internal/domain"
)

// Lookup is read access to one bundled master dataset.
// FindByID matches on string equality and returns domain.ErrNotFound when
// no row carries the ID.
type Lookup[T any] interface {
	ListAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id string) (T, error)
}

// Dataset groups the lookups of every master entity.
type Dataset interface {
	Employees() Lookup[domain.Employee]
	Customers() Lookup[domain.Customer]
}

// ReportGenerator renders an exported grid (header row first) as a document.
type ReportGenerator interface {
	Generate(ctx context.Context, title string, records [][]string, w io.Writer) error
}
