package handlers

import (
	"bytes"
	"encoding/hex"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/zeebo/blake3"

	"github.com/csg33k/masterdash/internal/i18n"
	"github.com/csg33k/masterdash/internal/ports"
	"github.com/csg33k/masterdash/internal/templates"
)

// LangCookie remembers the language picked with ?lang=.
const LangCookie = "lang"

type Handler struct {
	data        ports.Dataset
	catalog     *i18n.Catalog
	report      ports.ReportGenerator
	defaultLang string
}

func New(data ports.Dataset, catalog *i18n.Catalog, report ports.ReportGenerator, defaultLang string) *Handler {
	return &Handler{data: data, catalog: catalog, report: report, defaultLang: defaultLang}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	employeeResource(h).mount(mux)
	customerResource(h).mount(mux)
	mux.HandleFunc("/", h.notFound)
	return requestID(logRequests(gzip(mux)))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(w, r)
	employees, err := h.data.Employees().ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	customers, err := h.data.Customers().ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, templates.HomePage(h.chrome(r, loc, loc.T("common:home"), ""), templates.Home{
		Entities: []templates.Entity{
			{Label: loc.T("common:menu.employee"), Count: len(employees), Href: employeePath},
			{Label: loc.T("common:menu.customer"), Count: len(customers), Href: customerPath},
		},
	}))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := templates.NotFoundPage(h.chrome(r, loc, loc.T("common:notFoundTitle"), "")).Render(r.Context(), w); err != nil {
		slog.WarnContext(r.Context(), "render not found page", "err", err)
	}
}

// localizer picks the request language: ?lang= (remembered in a cookie),
// then the cookie, then the configured default.
func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) *i18n.Localizer {
	if lang := r.URL.Query().Get("lang"); h.catalog.Has(lang) {
		http.SetCookie(w, &http.Cookie{
			Name:     LangCookie,
			Value:    lang,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return h.catalog.Localizer(lang)
	}
	if c, err := r.Cookie(LangCookie); err == nil && h.catalog.Has(c.Value) {
		return h.catalog.Localizer(c.Value)
	}
	return h.catalog.Localizer(h.defaultLang)
}

func (h *Handler) chrome(r *http.Request, loc *i18n.Localizer, title, section string) templates.Chrome {
	q := r.URL.Query()
	q.Del("lang")
	return templates.Chrome{
		L:         loc,
		Title:     title,
		Section:   section,
		Path:      r.URL.Path,
		Query:     q,
		Languages: h.catalog.Languages(),
	}
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	renderStatus(w, r, http.StatusOK, c)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// etagMatch reports whether the If-None-Match header names etag. Weak tags
// and the suffix added to compressed responses still match.
func etagMatch(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "W/")
		if tag == "*" {
			return true
		}
		for _, enc := range []string{compressedETagSuffix, "-zstd"} {
			tag = strings.Replace(tag, enc+`"`, `"`, 1)
		}
		if tag == etag {
			return true
		}
	}
	return false
}

// attachment sends body as a download named filename. The ETag is the blake3
// digest of body, so an unchanged export answers 304.
func attachment(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	sum := blake3.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Write(body)
}
