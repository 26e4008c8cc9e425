package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/masterdash/internal/domain"
)

func TestBundledDatasets(t *testing.T) {
	ds, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	employees, err := ds.Employees().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 24)
	assert.Equal(t, "EMP001", employees[0].ID)
	for _, e := range employees {
		assert.Contains(t, domain.Positions, e.Position, e.ID)
	}

	customers, err := ds.Customers().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 15)
	assert.Equal(t, "Doe, Inc", customers[0].Company)
}

func TestFindByID(t *testing.T) {
	ds, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	e, err := ds.Employees().FindByID(ctx, "EMP002")
	require.NoError(t, err)
	assert.Equal(t, "Ben Miller", e.Name)

	_, err = ds.Employees().FindByID(ctx, "emp002")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ds.Customers().FindByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAllReturnsCopies(t *testing.T) {
	ds := FromRows([]domain.Employee{{ID: "1", Name: "A"}}, nil)
	ctx := context.Background()

	rows, err := ds.Employees().ListAll(ctx)
	require.NoError(t, err)
	rows[0].Name = "mutated"

	again, err := ds.Employees().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Name)

	customers, err := ds.Customers().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}
