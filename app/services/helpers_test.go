package services

import (
	"testing"
	"time"

	"quillblog/app/models"
	"quillblog/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	posts    *PostService
	comments *CommentService
	users    *UserService
	author   *models.User
	clock    *testClock
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	postRepo, commentRepo, userRepo := mock.NewRepositories()
	clock := &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	f := &fixture{
		posts:    NewPostService(postRepo, commentRepo, userRepo),
		comments: NewCommentService(commentRepo, postRepo),
		users:    NewUserService(userRepo),
		clock:    clock,
	}
	f.posts.SetClock(clock.Now)
	f.comments.SetClock(clock.Now)

	author := &models.User{Username: "admin", PasswordHash: "x"}
	author.BeforeCreate(clock.Now())
	require.NoError(t, userRepo.Create(author))
	f.author = author
	return f
}

func (f *fixture) createPost(t *testing.T, title string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: f.author.ID, Title: title, Text: "Body of " + title}
	require.NoError(t, f.posts.CreatePost(post))
	return post
}
