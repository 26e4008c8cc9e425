// Package templates renders the dashboard pages.
//
// Pages are html/template files embedded in the binary and exposed as
// templ components, so handlers render everything through templ.Component
// and grid cell renderers can be plain templ components as well.
package templates

import (
	"embed"
	"html/template"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/csg33k/masterdash/internal/i18n"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"args":  args,
}

var pages = map[string]*template.Template{
	"home":      parse("home.html"),
	"grid":      parse("grid.html"),
	"form":      parse("form.html"),
	"submitted": parse("submitted.html"),
	"notfound":  parse("notfound.html"),
}

func parse(page string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(funcs).
		ParseFS(files, "html/layout.html", "html/"+page))
}

// args builds interpolation arguments from alternating names and values.
func args(kv ...any) i18n.Args {
	a := i18n.Args{}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			a[k] = kv[i+1]
		}
	}
	return a
}

// Chrome carries what the shared layout needs on every page.
type Chrome struct {
	L     *i18n.Localizer
	Title string
	// Section highlights the active menu entry: "", "employee" or "customer".
	Section   string
	Path      string
	Query     url.Values
	Languages []string
}

// LangHref links the current page in another language, keeping its query.
func (c Chrome) LangHref(lang string) string {
	q := url.Values{}
	for k, v := range c.Query {
		q[k] = v
	}
	q.Set("lang", lang)
	return c.Path + "?" + q.Encode()
}

type page struct {
	Chrome
	Data any
}

func render(name string, c Chrome, data any) templ.Component {
	return templ.FromGoHTML(pages[name], page{Chrome: c, Data: data})
}

// Entity is one dashboard tile.
type Entity struct {
	Label string
	Count int
	Href  string
}

// Home is the dashboard landing page.
type Home struct {
	Entities []Entity
}

func HomePage(c Chrome, d Home) templ.Component { return render("home", c, d) }

func GridPage(c Chrome, t Table) templ.Component { return render("grid", c, t) }

// Option is one choice of a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is one input of a form.
type Field struct {
	Name  string
	Label string
	// Type is the input type; ignored when Options is set.
	Type     string
	Value    string
	Options  []Option
	Required bool
	Wide     bool
	Error    string
}

// Form is a create or edit form.
type Form struct {
	Title      string
	Action     string
	CancelHref string
	// Notice is shown above the fields, e.g. when an edited record is missing.
	Notice string
	Fields []Field
}

func FormPage(c Chrome, f Form) templ.Component { return render("form", c, f) }

// Submitted echoes an accepted form payload.
type Submitted struct {
	Title    string
	Payload  string
	BackHref string
}

func SubmittedPage(c Chrome, s Submitted) templ.Component { return render("submitted", c, s) }

func NotFoundPage(c Chrome) templ.Component { return render("notfound", c, nil) }
