package controllers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostControllerList(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)

	env.createPost(t, "Draft post", false)
	env.createPost(t, "Older post", true)
	env.now = env.now.Add(time.Hour)
	env.createPost(t, "Newer post", true)

	rec := serve(pc.List, request("GET", "/", 0, nil, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "Draft post")
	newer := strings.Index(body, "Newer post")
	older := strings.Index(body, "Older post")
	require.True(t, newer >= 0 && older >= 0)
	assert.Less(t, newer, older)
}

func TestPostControllerDetail(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)
	post := env.createPost(t, "Detail post", true)

	pending := addComment(t, env, post.ID, "pending words")
	approved := addComment(t, env, post.ID, "approved words")
	_, err := env.comments.Approve(approved.ID)
	require.NoError(t, err)
	_ = pending

	t.Run("anonymous sees approved comments only", func(t *testing.T) {
		rec := serve(pc.Detail, request("GET", post.URL(), post.ID, nil, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "approved words")
		assert.NotContains(t, rec.Body.String(), "pending words")
		assert.NotContains(t, rec.Body.String(), "/post_edit/")
	})

	t.Run("editor sees pending comments with moderation", func(t *testing.T) {
		rec := serve(pc.Detail, request("GET", post.URL(), post.ID, nil, env.editor))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pending words")
		assert.Contains(t, rec.Body.String(), "/comment_approve/")
		assert.Contains(t, rec.Body.String(), "/post_edit/")
	})

	t.Run("drafts are hidden from visitors", func(t *testing.T) {
		draft := env.createPost(t, "Unfinished", false)

		rec := serve(pc.Detail, request("GET", draft.URL(), draft.ID, nil, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Unfinished")

		rec = serve(pc.Detail, request("GET", draft.URL(), draft.ID, nil, env.editor))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Unfinished")
	})

	t.Run("missing post", func(t *testing.T) {
		rec := serve(pc.Detail, request("GET", "/post/999/", 999, nil, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not Found")
	})
}

func TestPostControllerNew(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)

	t.Run("form", func(t *testing.T) {
		rec := serve(pc.New, request("GET", "/post/new/", 0, nil, env.editor))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `class="textinputclass"`)
		assert.Contains(t, body, `class="editable medium-editor-textarea postcontent"`)
		assert.Contains(t, body, "selected")
	})

	t.Run("valid submission creates a draft", func(t *testing.T) {
		form := url.Values{"author": {"1"}, "title": {"Fresh"}, "text": {"Fresh body"}}
		rec := serve(pc.New, request("POST", "/post/new/", 0, form, env.editor))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		drafts, err := env.posts.ListDrafts()
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "Fresh", drafts[0].Title)
		assert.Equal(t, drafts[0].URL(), rec.Header().Get("Location"))
	})

	t.Run("invalid submission re-renders", func(t *testing.T) {
		form := url.Values{"author": {"1"}, "title": {""}, "text": {"kept text"}}
		rec := serve(pc.New, request("POST", "/post/new/", 0, form, env.editor))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "This field is required.")
		assert.Contains(t, rec.Body.String(), "kept text")
	})

	t.Run("unknown author", func(t *testing.T) {
		form := url.Values{"author": {"42"}, "title": {"T"}, "text": {"B"}}
		rec := serve(pc.New, request("POST", "/post/new/", 0, form, env.editor))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Select a valid choice")
	})
}

func TestPostControllerEdit(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)
	post := env.createPost(t, "Before", false)

	rec := serve(pc.Edit, request("GET", "/post/1/edit/", post.ID, nil, env.editor))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Before"`)

	form := url.Values{"author": {"1"}, "title": {"After"}, "text": {"New body"}}
	rec = serve(pc.Edit, request("POST", "/post/1/edit/", post.ID, form, env.editor))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, post.URL(), rec.Header().Get("Location"))

	got, err := env.posts.GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, post.CreatedAt, got.CreatedAt)

	rec = serve(pc.Edit, request("GET", "/post/999/edit/", 999, nil, env.editor))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostControllerRemove(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)
	post := env.createPost(t, "Doomed", true)
	comment := addComment(t, env, post.ID, "goes too")

	rec := serve(pc.Remove, request("GET", "/post/1/remove/", post.ID, nil, env.editor))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure")

	rec = serve(pc.Remove, request("POST", "/post/1/remove/", post.ID, url.Values{}, env.editor))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	_, err := env.posts.GetPost(post.ID)
	assert.Error(t, err)
	_, err = env.comments.GetComment(comment.ID)
	assert.Error(t, err)
}

func TestPostControllerDraftsAndPublish(t *testing.T) {
	env := newTestEnv(t)
	pc := NewPostController(env.posts, env.users, nil, env.renderer)
	first := env.createPost(t, "First draft", false)
	env.now = env.now.Add(time.Minute)
	env.createPost(t, "Second draft", false)

	rec := serve(pc.Drafts, request("GET", "/drafts/", 0, nil, env.editor))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, "First draft"), strings.Index(body, "Second draft"))

	rec = serve(pc.Publish, request("POST", "/post/1/publish/", first.ID, url.Values{}, env.editor))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, first.URL(), rec.Header().Get("Location"))

	published, err := env.posts.ListPublished()
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, first.ID, published[0].ID)
	assert.False(t, published[0].PublishedAt.After(env.now))

	rec = serve(pc.Publish, request("POST", "/post/999/publish/", 999, url.Values{}, env.editor))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
