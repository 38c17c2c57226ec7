package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate stamps the creation time for this instance.
func (p *Post) BeforeCreate(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}

// Publish stamps the publication time. The caller persists the post.
func (p *Post) Publish(now time.Time) {
	p.PublishedAt = &now
}

// IsPublished reports whether the post has a publication time that is not in the future.
func (p *Post) IsPublished(now time.Time) bool {
	return p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// IsDraft reports whether the post has never been published.
func (p *Post) IsDraft() bool {
	return p.PublishedAt == nil
}

// ApprovedComments returns the attached comments that passed moderation, in storage order.
func (p *Post) ApprovedComments() []*Comment {
	var approved []*Comment
	for _, c := range p.Comments {
		if c.Approved {
			approved = append(approved, c)
		}
	}
	return approved
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	comment.Post = p
	p.Comments = append(p.Comments, comment)
	return nil
}

// URL is the post's detail page.
func (p *Post) URL() string {
	return fmt.Sprintf("/post/%d/", p.ID)
}

func (p *Post) String() string {
	return p.Title
}
