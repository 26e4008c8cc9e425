// Package terminal prints one page of a grid as a text table.
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/i18n"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	oddStyle    = cellStyle.Foreground(lipgloss.Color("245"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Page is the text rendition of the visible grid page.
type Page struct {
	Title     string
	Headers   []string
	Rows      [][]string
	Status    grid.Status
	Page      int
	PageCount int
	From, To  int
	Filtered  int
	Total     int
}

// PageOf captures the current page of g. Cells are the plain text values;
// custom renderers are ignored.
func PageOf[T any](g *grid.Grid[T]) Page {
	v := g.View()
	cols := g.Columns()
	p := Page{
		Title:     g.Title,
		Status:    v.Status,
		Page:      v.PageIndex + 1,
		PageCount: v.DisplayPageCount(),
		From:      v.FirstRow(),
		To:        v.LastRow(),
		Filtered:  v.FilteredCount(),
		Total:     v.Total,
	}
	for _, c := range cols {
		p.Headers = append(p.Headers, c.ExportHeader())
	}
	for _, row := range v.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = grid.SanitizeCell(c.ValueOf(row))
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

// Render writes p with a pager footer. Empty datasets and empty filter
// results print their own messages instead of a table.
func Render(w io.Writer, p Page, loc *i18n.Localizer) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(p.Title)); err != nil {
		return err
	}
	switch p.Status {
	case grid.StatusEmptyData:
		_, err := fmt.Fprintln(w, mutedStyle.Render(loc.T("message:emptyMessage")))
		return err
	case grid.StatusNoResults:
		_, err := fmt.Fprintln(w, mutedStyle.Render(loc.T("message:noResultsFound")))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(p.Headers...).
		Rows(p.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}

	footer := loc.T("message:showing", i18n.Args{"from": p.From, "to": p.To, "total": p.Filtered}) +
		fmt.Sprintf("  ·  %s %d %s %d", loc.T("message:page"), p.Page, loc.T("message:of"), p.PageCount)
	if p.Filtered != p.Total {
		footer += fmt.Sprintf("  (%d %s)", p.Total, loc.T("common:records"))
	}
	_, err := fmt.Fprintln(w, mutedStyle.Render(footer))
	return err
}
