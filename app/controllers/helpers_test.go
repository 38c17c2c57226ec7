package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"quillblog/app/auth"
	"quillblog/app/middleware"
	"quillblog/app/models"
	"quillblog/app/repositories/mock"
	"quillblog/app/services"
	"quillblog/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	posts    *services.PostService
	comments *services.CommentService
	users    *services.UserService
	sessions *auth.SessionManager
	renderer *Renderer
	editor   *models.User
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	postRepo, commentRepo, userRepo := mock.NewRepositories()
	env := &testEnv{
		posts:    services.NewPostService(postRepo, commentRepo, userRepo),
		comments: services.NewCommentService(commentRepo, postRepo),
		users:    services.NewUserService(userRepo),
		sessions: auth.NewSessionManager([]byte("test-secret"), time.Hour, false),
		now:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }
	env.posts.SetClock(clock)
	env.comments.SetClock(clock)

	funcs := views.Funcs(time.UTC)
	funcs["url"] = func(name string, pairs ...interface{}) string {
		return "/" + name + "/" + fmt.Sprint(pairs...)
	}
	templates, err := views.Load(funcs)
	require.NoError(t, err)
	env.renderer = NewRenderer(templates, zap.NewNop())

	editor, err := env.users.CreateUser("editor", "password123")
	require.NoError(t, err)
	env.editor = editor
	return env
}

func (env *testEnv) createPost(t *testing.T, title string, publish bool) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: env.editor.ID, Title: title, Text: "Body of " + title}
	require.NoError(t, env.posts.CreatePost(post))
	if publish {
		published, err := env.posts.Publish(post.ID)
		require.NoError(t, err)
		post = published
	}
	return post
}

// request builds a request with route vars, form values and optionally a logged-in user.
func request(method, target string, pk int, form url.Values, user *models.User) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if pk != 0 {
		req = mux.SetURLVars(req, map[string]string{"pk": strconv.Itoa(pk)})
	}
	if user != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), user))
	}
	return req
}

func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
