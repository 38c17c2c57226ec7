package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"quillblog/app/auth"
	"quillblog/app/config"
	"quillblog/app/metrics"
	"quillblog/app/models"
	"quillblog/app/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	*App
	store  *repositories.Store
	now    time.Time
	editor *models.User
	cookie *http.Cookie
	m      *metrics.Metrics
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		HTTPAddr:        ":0",
		DBPath:          "test_db",
		TimeZone:        "UTC",
		LoginURL:        "/login/",
		SessionSecret:   "test-secret",
		SessionTTL:      time.Hour,
		ShutdownTimeout: time.Second,
	}
}

func setupTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	store, err := repositories.OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m, handler := metrics.Setup()
	ta := &testApp{
		store: store,
		now:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		m:     m,
	}

	app, err := SetupMVCRoutes(Options{
		Store:          store,
		Config:         cfg,
		Logger:         zap.NewNop(),
		Metrics:        m,
		MetricsHandler: handler,
		Clock:          func() time.Time { return ta.now },
	})
	require.NoError(t, err)
	ta.App = app

	editor, err := app.Users.CreateUser("editor", "password123")
	require.NoError(t, err)
	ta.editor = editor

	token, err := app.Sessions.Issue(editor)
	require.NoError(t, err)
	ta.cookie = &http.Cookie{Name: auth.SessionCookie, Value: token}
	return ta
}

func (ta *testApp) createPost(t *testing.T, title string, publish bool) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: ta.editor.ID, Title: title, Text: "Body of " + title}
	require.NoError(t, ta.Posts.CreatePost(post))
	if publish {
		_, err := ta.Posts.Publish(post.ID)
		require.NoError(t, err)
	}
	return post
}

func (ta *testApp) do(method, target string, form url.Values, loggedIn bool) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if loggedIn {
		req.AddCookie(ta.cookie)
	}

	rec := httptest.NewRecorder()
	ta.Handler.ServeHTTP(rec, req)
	return rec
}
