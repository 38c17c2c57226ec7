package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				AuthorID:  1,
				Title:     "Valid Title",
				Text:      "Body text",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing author",
			post: &Post{
				Title:     "Valid Title",
				Text:      "Body text",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "title too long",
			post: &Post{
				AuthorID:  1,
				Title:     strings.Repeat("a", 201),
				Text:      "Body text",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty text",
			post: &Post{
				AuthorID:  1,
				Title:     "Valid Title",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				AuthorID: 1,
				Title:    "Valid Title",
				Text:     "Body text",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostFieldErrors(t *testing.T) {
	post := &Post{Title: strings.Repeat("x", 201), CreatedAt: time.Now()}
	fields := FieldErrors(post.Validate())

	assert.Equal(t, "This field is required.", fields["author"])
	assert.Contains(t, fields["title"], "at most 200 characters")
	assert.Equal(t, "This field is required.", fields["text"])
}

func TestPostBeforeCreate(t *testing.T) {
	first := &Post{Title: "First"}
	second := &Post{Title: "Second"}

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	first.BeforeCreate(t1)
	second.BeforeCreate(t2)

	assert.Equal(t, t1, first.CreatedAt)
	assert.Equal(t, t2, second.CreatedAt)

	first.BeforeCreate(t2)
	assert.Equal(t, t1, first.CreatedAt, "existing creation time is kept")
}

func TestPostPublish(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := &Post{ID: 1, Title: "Draft"}

	assert.True(t, post.IsDraft())
	assert.False(t, post.IsPublished(now))

	post.Publish(now)
	assert.False(t, post.IsDraft())
	assert.True(t, post.IsPublished(now))
	assert.True(t, post.IsPublished(now.Add(time.Second)))
	assert.False(t, post.IsPublished(now.Add(-time.Second)), "future publication is not yet published")
}

func TestPostApprovedComments(t *testing.T) {
	post := &Post{ID: 7, Title: "Post"}
	for i, approved := range []bool{true, false, true} {
		assert.NoError(t, post.AddComment(&Comment{ID: i + 1, Approved: approved}))
	}

	approved := post.ApprovedComments()
	assert.Len(t, approved, 2)
	assert.Equal(t, 1, approved[0].ID)
	assert.Equal(t, 3, approved[1].ID)
	assert.Equal(t, 7, approved[1].PostID)

	assert.Error(t, post.AddComment(nil))
}

func TestPostURL(t *testing.T) {
	post := &Post{ID: 42, Title: "Answer"}
	assert.Equal(t, "/post/42/", post.URL())
	assert.Equal(t, "Answer", post.String())
}
