package handlers

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/a-h/templ"

	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/templates"
)

// actionColumn links each row to its edit form. The header is a component,
// so the CSV header of this column stays empty while the cells export the ID.
func actionColumn[T any](loc *i18n.Localizer, label, path string, id func(T) string) grid.Column[T] {
	return grid.Column[T]{
		ID:         "action",
		HeaderCell: templ.Raw(`<span title="` + templ.EscapeString(label) + `">⚙</span>`),
		NoSort:     true,
		Value:      func(row T) any { return id(row) },
		Cell: func(v any, _ T) templ.Component {
			return templates.Link(path+"/"+url.PathEscape(grid.Text(v)), loc.T("button:edit"))
		},
	}
}

func statusLabel(loc *i18n.Localizer, status string) string {
	return translated(loc, "common:status."+lowerCamel(status), templates.TitleCase(status))
}

// translated returns fallback when key has no translation.
func translated(loc *i18n.Localizer, key, fallback string) string {
	if s := loc.T(key); s != key {
		return s
	}
	return fallback
}

// lowerCamel turns "Product Owner" into "productOwner".
func lowerCamel(s string) string {
	var b strings.Builder
	for i, word := range strings.Fields(s) {
		r := []rune(strings.ToLower(word))
		if i > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}
