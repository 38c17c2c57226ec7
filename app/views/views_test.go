package views

import (
	"bytes"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFuncs() template.FuncMap {
	funcs := Funcs(time.UTC)
	funcs["url"] = func(name string, pairs ...interface{}) string { return "/" + name + "/" }
	return funcs
}

func TestLoad(t *testing.T) {
	templates, err := Load(testFuncs())
	require.NoError(t, err)

	for _, page := range Pages {
		tmpl, ok := templates[page]
		require.True(t, ok, page)
		assert.NotNil(t, tmpl.Lookup("layout"), page)
		assert.NotNil(t, tmpl.Lookup("content"), page)
	}
}

func TestLoadRequiresURLFunc(t *testing.T) {
	_, err := Load(Funcs(time.UTC))
	assert.Error(t, err)
}

func TestRenderAbout(t *testing.T) {
	templates, err := Load(testFuncs())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, templates["about"].ExecuteTemplate(&buf, "layout", map[string]interface{}{"Title": "About"}))
	assert.Contains(t, buf.String(), "<title>About | Quill Blog</title>")
	assert.Contains(t, buf.String(), `href="/login/"`)
}

func TestDate(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	date := Funcs(berlin)["date"].(func(interface{}) string)

	ts := time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "January 15, 2024, 1:30 PM", date(ts))
	assert.Equal(t, "January 15, 2024, 1:30 PM", date(&ts))

	var missing *time.Time
	assert.Equal(t, "", date(missing))
	assert.Equal(t, "", date("nope"))
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/blog.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "medium-editor-textarea")
}
