package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/masterdash/internal/adapters/pdf"
	"github.com/csg33k/masterdash/internal/adapters/static"
	"github.com/csg33k/masterdash/internal/i18n"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	data, err := static.New()
	require.NoError(t, err)
	catalog, err := i18n.Load()
	require.NoError(t, err)
	return New(data, catalog, pdf.Generator{}, "jp").Routes()
}

func get(t *testing.T, h http.Handler, target string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, m := range mods {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func post(t *testing.T, h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func rowCount(body string) int { return strings.Count(body, `class="clickable"`) }

func TestHomeShowsCounts(t *testing.T) {
	rec := get(t, newTestHandler(t), "/?lang=en")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Employees")
	assert.Contains(t, body, ">24<")
	assert.Contains(t, body, ">15<")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "lang=en")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestLanguageResolution(t *testing.T) {
	h := newTestHandler(t)

	assert.Contains(t, get(t, h, "/master/employee").Body.String(), "従業員一覧")

	withCookie := func(r *http.Request) { r.AddCookie(&http.Cookie{Name: LangCookie, Value: "en"}) }
	assert.Contains(t, get(t, h, "/master/employee", withCookie).Body.String(), "Employee List")

	unknown := get(t, h, "/master/employee?lang=xx")
	assert.Contains(t, unknown.Body.String(), "従業員一覧")
	assert.Empty(t, unknown.Header().Get("Set-Cookie"))
}

func TestEmployeeGridPaging(t *testing.T) {
	h := newTestHandler(t)

	body := get(t, h, "/master/employee?lang=en").Body.String()
	assert.Equal(t, 10, rowCount(body))
	assert.Contains(t, body, "Showing 1-10 of 24")
	assert.Contains(t, body, "Page 1 of 3")

	body = get(t, h, "/master/employee?lang=en&page=99").Body.String()
	assert.Equal(t, 4, rowCount(body))
	assert.Contains(t, body, "Page 3 of 3")

	body = get(t, h, "/master/employee?lang=en&size=50").Body.String()
	assert.Equal(t, 24, rowCount(body))

	body = get(t, h, "/master/employee?lang=en&size=7").Body.String()
	assert.Equal(t, 10, rowCount(body))
}

func TestEmployeeGridFilterAndSort(t *testing.T) {
	h := newTestHandler(t)

	body := get(t, h, "/master/employee?lang=en&q=+AIKO++tanaka").Body.String()
	assert.Equal(t, 1, rowCount(body))
	assert.Contains(t, body, "Aiko Tanaka")

	body = get(t, h, "/master/employee?lang=en&q=nobody-matches").Body.String()
	assert.Equal(t, 0, rowCount(body))
	assert.Contains(t, body, "No results found")

	body = get(t, h, "/master/employee?lang=en&sort=name&dir=desc").Body.String()
	assert.Less(t, strings.Index(body, "Yuki Mori"), strings.Index(body, "Wei Chen"))
	assert.NotContains(t, body, "Aiko Tanaka")
}

func TestCustomerCSVExport(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/master/customer/export.csv?lang=en")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Customer_List.csv")

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 16)
	assert.Equal(t, "ID,Name,Company,Email,Phone,City,Status,Total Spent,Customer Since,", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "CUS001,John Doe,Doe、 Inc,"), lines[1])
	assert.Contains(t, lines[1], ",Active,12.50,2015-01-01,")
	assert.False(t, strings.HasSuffix(rec.Body.String(), "\n"))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	again := get(t, h, "/master/customer/export.csv?lang=en", func(r *http.Request) {
		r.Header.Set("If-None-Match", etag)
	})
	assert.Equal(t, http.StatusNotModified, again.Code)
}

func TestCSVExportFollowsViewState(t *testing.T) {
	h := newTestHandler(t)

	rec := get(t, h, "/master/customer/export.csv?lang=en&q=tokyo&page=2&size=5")
	lines := strings.Split(rec.Body.String(), "\n")
	for _, l := range lines[1:] {
		assert.Contains(t, l, "Tokyo")
	}

	quoted := get(t, h, "/master/customer/export.csv?lang=en&quoted=1").Body.String()
	assert.Contains(t, quoted, `"Doe, Inc"`)
}

func TestAmountText(t *testing.T) {
	assert.Equal(t, "12.50", amount(1250).String())
	assert.Equal(t, "1000000.00", amount(100000000).String())
	assert.Equal(t, "-0.05", amount(-5).String())
}

func TestCustomerSpentSortsByCents(t *testing.T) {
	rec := get(t, newTestHandler(t), "/master/customer/export.csv?lang=en&sort=spent&dir=desc")
	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 16)
	assert.Contains(t, lines[1], ",1121.16,")
	assert.Contains(t, lines[15], ",12.50,")
}

func TestPDFExport(t *testing.T) {
	rec := get(t, newTestHandler(t), "/master/employee/export.pdf?lang=en")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Employee_List.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestEditFormPrepopulates(t *testing.T) {
	body := get(t, newTestHandler(t), "/master/employee/EMP002?lang=en").Body.String()
	assert.Contains(t, body, "Edit Employee")
	assert.Contains(t, body, `value="Ben Miller"`)
	assert.Contains(t, body, `action="/master/employee/EMP002"`)
}

func TestEditUnknownIDDegradesToCreateForm(t *testing.T) {
	rec := get(t, newTestHandler(t), "/master/employee/NOPE?lang=en")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No record with ID NOPE")
	assert.Contains(t, body, "Create Employee")
	assert.Contains(t, body, `<option value="Engineer" selected>Engineer</option>`)
	assert.Contains(t, body, `action="/master/employee"`)
}

func TestCreateEmployeeValidation(t *testing.T) {
	h := newTestHandler(t)
	rec := post(t, h, "/master/employee?lang=en", url.Values{
		"name":     {""},
		"email":    {"bad"},
		"position": {"Engineer"},
		"password": {"abc"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "This field is required")
	assert.Contains(t, body, "Must be at least 6 characters")
	assert.Contains(t, body, "Passwords do not match")
	assert.Contains(t, body, `value="bad"`)
}

func TestCreateEmployeeEchoesPayload(t *testing.T) {
	rec := post(t, newTestHandler(t), "/master/employee?lang=en", url.Values{
		"name":            {"Ada Lovelace"},
		"email":           {"ada@example.com"},
		"position":        {"Analyst"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
		"startDate":       {"2024-04-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Submitted values")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "2024-04-01")
}

func TestEditEmployeeWithoutPassword(t *testing.T) {
	rec := post(t, newTestHandler(t), "/master/employee/EMP001?lang=en", url.Values{
		"name":      {"Aiko Tanaka"},
		"email":     {"aiko.tanaka@example.com"},
		"position":  {"Engineer"},
		"startDate": {"2018-01-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMP001")
}

func TestCustomerValidation(t *testing.T) {
	rec := post(t, newTestHandler(t), "/master/customer?lang=en", url.Values{
		"name":   {"Acme"},
		"email":  {"ops@acme.test"},
		"phone":  {"call me"},
		"status": {"Active"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid format")
}

func TestUnknownRouteIsLocalized404(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/nowhere?lang=en")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = get(t, h, "/master/employee/EMP001/extra")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ページが見つかりません")
}

func TestRequestIDPassthrough(t *testing.T) {
	const id = "3b241101-e2bb-4255-8caf-4136c566a962"
	rec := get(t, newTestHandler(t), "/", func(r *http.Request) { r.Header.Set(RequestIDHeader, id) })
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	rec = get(t, newTestHandler(t), "/", func(r *http.Request) { r.Header.Set(RequestIDHeader, "not-a-uuid") })
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestGzipWhenAccepted(t *testing.T) {
	rec := get(t, newTestHandler(t), "/master/employee", func(r *http.Request) {
		r.Header.Set("Accept-Encoding", "gzip")
	})
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestExportETagSurvivesCompressionAndWeakTags(t *testing.T) {
	h := newTestHandler(t)
	acceptGzip := func(r *http.Request) { r.Header.Set("Accept-Encoding", "gzip") }
	rec := get(t, h, "/master/customer/export.csv?lang=en", acceptGzip)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	for _, header := range []string{etag, "W/" + etag, `"other", ` + etag} {
		again := get(t, h, "/master/customer/export.csv?lang=en", acceptGzip, func(r *http.Request) {
			r.Header.Set("If-None-Match", header)
		})
		assert.Equal(t, http.StatusNotModified, again.Code, header)
	}

	changed := get(t, h, "/master/customer/export.csv?lang=en&q=tokyo", func(r *http.Request) {
		r.Header.Set("If-None-Match", etag)
	})
	assert.Equal(t, http.StatusOK, changed.Code)
}

func TestETagMatch(t *testing.T) {
	assert.True(t, etagMatch(`"abc"`, `"abc"`))
	assert.True(t, etagMatch(`W/"abc"`, `"abc"`))
	assert.True(t, etagMatch(`"abc-gzip"`, `"abc"`))
	assert.True(t, etagMatch(`"abc-zstd"`, `"abc"`))
	assert.True(t, etagMatch(`"x", "abc"`, `"abc"`))
	assert.True(t, etagMatch(`*`, `"abc"`))
	assert.False(t, etagMatch(``, `"abc"`))
	assert.False(t, etagMatch(`"abcd"`, `"abc"`))
}

func TestActionLinkEscapesID(t *testing.T) {
	catalog, err := i18n.Load()
	require.NoError(t, err)
	col := actionColumn(catalog.Localizer("en"), "Action", "/master/thing", func(id string) string { return id })

	var buf bytes.Buffer
	require.NoError(t, col.Cell("a/b c?d", "a/b c?d").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), `href="/master/thing/a%2Fb%20c%3Fd"`)
}

func TestLowerCamel(t *testing.T) {
	assert.Equal(t, "productOwner", lowerCamel("Product Owner"))
	assert.Equal(t, "onLeave", lowerCamel("On Leave"))
	assert.Equal(t, "active", lowerCamel("Active"))
}
