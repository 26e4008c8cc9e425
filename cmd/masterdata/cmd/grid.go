package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/handlers"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
	"github.com/csg33k/masterdash/internal/terminal"
)

// Entities accepted as the first argument.
var entities = []string{"employees", "customers"}

// viewFlags map a ViewState onto command line flags.
type viewFlags struct {
	filter string
	sort   string
	desc   bool
	page   int
	size   int
}

func (f *viewFlags) add(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "global filter text")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "", "column id to sort by")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	if paging {
		cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number, starting at 1")
		cmd.Flags().IntVar(&f.size, "size", grid.DefaultPageSize, fmt.Sprintf("rows per page, one of %v", grid.PageSizes))
	}
}

func (f viewFlags) state() grid.ViewState {
	st := grid.NewViewState().WithFilter(f.filter).WithPageSize(f.size)
	if f.sort != "" {
		st.Sort = []grid.SortSpec{{Column: f.sort, Desc: f.desc}}
	}
	return st.WithPage(f.page - 1)
}

// gridView is the part of a typed grid the subcommands use.
type gridView struct {
	title   string
	page    terminal.Page
	records [][]string
	csv     func(mode grid.CSVMode) ([]byte, error)
}

func load[T any](ctx context.Context, lookup ports.Lookup[T], title string, cols []grid.Column[T], st grid.ViewState) (*gridView, error) {
	rows, err := lookup.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(title, rows, cols)
	if err != nil {
		return nil, err
	}
	g.Restore(st)
	return &gridView{
		title:   g.Title,
		page:    terminal.PageOf(g),
		records: g.Records(),
		csv: func(mode grid.CSVMode) ([]byte, error) {
			var buf bytes.Buffer
			err := g.ExportCSV(&buf, mode)
			return buf.Bytes(), err
		},
	}, nil
}

func loadEntity(ctx context.Context, data ports.Dataset, loc *i18n.Localizer, entity string, st grid.ViewState) (*gridView, error) {
	switch entity {
	case "employees", "employee":
		return load[domain.Employee](ctx, data.Employees(), loc.T("employee:title"), handlers.EmployeeColumns(loc), st)
	case "customers", "customer":
		return load[domain.Customer](ctx, data.Customers(), loc.T("customer:title"), handlers.CustomerColumns(loc), st)
	}
	return nil, fmt.Errorf("unknown entity %q, want one of %v", entity, entities)
}
