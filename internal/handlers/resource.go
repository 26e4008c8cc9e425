package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/csg33k/masterdash/internal/domain"
	"github.com/csg33k/masterdash/internal/forms"
	"github.com/csg33k/masterdash/internal/grid"
	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
	"github.com/csg33k/masterdash/internal/templates"
)

// resource serves the grid, exports and forms of one master entity. T is
// the row type and F its form payload.
type resource[T any, F any] struct {
	h *Handler
	// name is the i18n namespace and the menu section.
	name   string
	path   string
	lookup func() ports.Lookup[T]
	id     func(T) string

	columns func(loc *i18n.Localizer) []grid.Column[T]

	formFrom func(T) F
	empty    func() F
	parse    func(url.Values) F
	validate func(loc *i18n.Localizer, mode forms.Mode) func(F) forms.Errors
	fields   func(loc *i18n.Localizer, f F, errs forms.Errors, mode forms.Mode) []templates.Field
}

func (rs *resource[T, F]) mount(mux *http.ServeMux) {
	mux.HandleFunc("GET "+rs.path, rs.list)
	mux.HandleFunc("GET "+rs.path+"/export.csv", rs.exportCSV)
	mux.HandleFunc("GET "+rs.path+"/export.pdf", rs.exportPDF)
	mux.HandleFunc("GET "+rs.path+"/add", rs.createForm)
	mux.HandleFunc("GET "+rs.path+"/{id}", rs.editForm)
	mux.HandleFunc("POST "+rs.path, rs.create)
	mux.HandleFunc("POST "+rs.path+"/{id}", rs.update)
}

func (rs *resource[T, F]) rowHref(row T) string {
	return rs.path + "/" + url.PathEscape(rs.id(row))
}

// grid loads every row and restores the view state from the query string.
func (rs *resource[T, F]) grid(r *http.Request, loc *i18n.Localizer) (*grid.Grid[T], error) {
	rows, err := rs.lookup().ListAll(r.Context())
	if err != nil {
		return nil, err
	}
	g, err := grid.New(loc.T(rs.name+":title"), rows, rs.columns(loc))
	if err != nil {
		return nil, err
	}
	g.Restore(grid.ParseState(r.URL.Query()))
	return g, nil
}

func (rs *resource[T, F]) list(w http.ResponseWriter, r *http.Request) {
	loc := rs.h.localizer(w, r)
	g, err := rs.grid(r, loc)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	tbl, err := templates.BuildTable(r.Context(), g, rs.path, rs.rowHref)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	tbl.AddHref = rs.path + "/add"
	render(w, r, templates.GridPage(rs.h.chrome(r, loc, g.Title, rs.name), tbl))
}

// exportCSV downloads the filtered and sorted rows of every page.
// ?quoted=1 switches to RFC 4180 quoting.
func (rs *resource[T, F]) exportCSV(w http.ResponseWriter, r *http.Request) {
	loc := rs.h.localizer(w, r)
	g, err := rs.grid(r, loc)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	mode := grid.CSVReplaceCommas
	if r.URL.Query().Get("quoted") == "1" {
		mode = grid.CSVQuoted
	}
	var buf bytes.Buffer
	if err := g.ExportCSV(&buf, mode); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	attachment(w, r, grid.CSVContentType, g.FileName(), buf.Bytes())
}

func (rs *resource[T, F]) exportPDF(w http.ResponseWriter, r *http.Request) {
	loc := rs.h.localizer(w, r)
	g, err := rs.grid(r, loc)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var buf bytes.Buffer
	if err := rs.h.report.Generate(r.Context(), g.Title, g.Records(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	attachment(w, r, "application/pdf", grid.PDFFileName(g.Title), buf.Bytes())
}

func (rs *resource[T, F]) createForm(w http.ResponseWriter, r *http.Request) {
	loc := rs.h.localizer(w, r)
	rs.renderForm(w, r, loc, http.StatusOK, formState[F]{mode: forms.Create, values: rs.empty()})
}

// editForm pre-populates the form from the row. An unknown ID degrades to an
// empty create form with a notice.
func (rs *resource[T, F]) editForm(w http.ResponseWriter, r *http.Request) {
	loc := rs.h.localizer(w, r)
	id := r.PathValue("id")
	row, err := rs.lookup().FindByID(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		slog.InfoContext(r.Context(), "edit of unknown record", "entity", rs.name, "id", id)
		rs.renderForm(w, r, loc, http.StatusOK, formState[F]{
			mode:   forms.Create,
			values: rs.empty(),
			notice: loc.T("message:recordNotFound", i18n.Args{"id": id}),
		})
	case err != nil:
		http.Error(w, err.Error(), 500)
	default:
		rs.renderForm(w, r, loc, http.StatusOK, formState[F]{mode: forms.Edit, id: id, values: rs.formFrom(row)})
	}
}

func (rs *resource[T, F]) create(w http.ResponseWriter, r *http.Request) {
	rs.submit(w, r, forms.Create, "")
}

func (rs *resource[T, F]) update(w http.ResponseWriter, r *http.Request) {
	rs.submit(w, r, forms.Edit, r.PathValue("id"))
}

// submit validates the posted form. Errors re-render the form with 422;
// an accepted payload is echoed back, nothing is stored.
func (rs *resource[T, F]) submit(w http.ResponseWriter, r *http.Request, mode forms.Mode, id string) {
	loc := rs.h.localizer(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	payload := rs.parse(r.PostForm)

	var accepted bool
	errs := forms.Submit(payload, rs.validate(loc, mode), func(F) { accepted = true })
	if !accepted {
		rs.renderForm(w, r, loc, http.StatusUnprocessableEntity, formState[F]{mode: mode, id: id, values: payload, errs: errs})
		return
	}

	body, err := json.MarshalIndent(submission[F]{ID: id, Values: payload}, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	slog.InfoContext(r.Context(), "form submitted", "entity", rs.name, "id", id)
	title := loc.T(rs.name + ":form.title_create")
	if mode == forms.Edit {
		title = loc.T(rs.name + ":form.title_edit")
	}
	render(w, r, templates.SubmittedPage(rs.h.chrome(r, loc, title, rs.name), templates.Submitted{
		Title:    title,
		Payload:  string(body),
		BackHref: rs.path,
	}))
}

type submission[F any] struct {
	ID     string `json:"id,omitempty"`
	Values F      `json:"values"`
}

type formState[F any] struct {
	mode   forms.Mode
	id     string
	values F
	errs   forms.Errors
	notice string
}

func (rs *resource[T, F]) renderForm(w http.ResponseWriter, r *http.Request, loc *i18n.Localizer, status int, st formState[F]) {
	f := templates.Form{
		Title:      loc.T(rs.name + ":form.title_create"),
		Action:     rs.path,
		CancelHref: rs.path,
		Notice:     st.notice,
		Fields:     rs.fields(loc, st.values, st.errs, st.mode),
	}
	if st.mode == forms.Edit {
		f.Title = loc.T(rs.name + ":form.title_edit")
		f.Action = rs.path + "/" + url.PathEscape(st.id)
	}
	renderStatus(w, r, status, templates.FormPage(rs.h.chrome(r, loc, f.Title, rs.name), f))
}
