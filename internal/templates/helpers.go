package templates

import (
	"context"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Money formats an integer cent value as "$1,234.50".
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", float64(cents)/100)
}

// MaxRating is the number of stars drawn by Stars.
const MaxRating = 5

// Stars renders a rating as filled and empty stars.
func Stars(rating int) templ.Component {
	n := min(max(rating, 0), MaxRating)
	stars := strings.Repeat("★", n) + strings.Repeat("☆", MaxRating-n)
	return html(`<span class="stars" title="` + itoa(n) + `/5">` + stars + `</span>`)
}

var badgeColors = map[string]string{
	"active":   "#2c6e49",
	"inactive": "#6b5e4e",
	"lead":     "#1f5f8b",
	"on leave": "#b7791f",
}

// Badge renders a status label in the color of its state.
func Badge(status, label string) templ.Component {
	color, ok := badgeColors[strings.ToLower(status)]
	if !ok {
		color = "#0d1117"
	}
	return html(`<span class="badge" style="color:` + color + `;border-color:` + color + `">` +
		template.HTMLEscapeString(label) + `</span>`)
}

// Link renders an anchor; rows use it for their action column.
func Link(href, label string) templ.Component {
	return html(`<a class="btn" style="padding:2px 10px;font-size:0.65rem;" href="` +
		template.HTMLEscapeString(href) + `">` + template.HTMLEscapeString(label) + `</a>`)
}

// TitleCase capitalizes every word of s.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func html(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
