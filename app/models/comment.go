package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate stamps the creation time for this instance.
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}

// Approve marks the comment as visible on the post page.
func (c *Comment) Approve() {
	c.Approved = true
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post
	c.PostID = post.ID
	return nil
}

// URL is the owning post's detail page.
func (c *Comment) URL() string {
	return (&Post{ID: c.PostID}).URL()
}

func (c *Comment) String() string {
	return c.Text
}
