package services

import (
	"fmt"
	"time"

	"quillblog/app/models"
	"quillblog/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	now         func() time.Time
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *CommentService) SetClock(now func() time.Time) {
	s.now = now
}

// AddComment attaches a new, unapproved comment to an existing post.
// A missing post yields repositories.ErrNotFound.
func (s *CommentService) AddComment(postID int, comment *models.Comment) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if err := comment.SetPost(post); err != nil {
		return err
	}

	comment.Approved = false
	comment.BeforeCreate(s.now())

	if err := comment.Validate(); err != nil {
		return validationError(err)
	}
	return s.commentRepo.Create(comment)
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id int) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// Approve makes a comment visible on its post's page.
func (s *CommentService) Approve(id int) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comment.Approve()
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to approve comment %d: %w", id, err)
	}
	return comment, nil
}

// Remove deletes a comment and returns it so callers know which post it belonged to.
func (s *CommentService) Remove(id int) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(id); err != nil {
		return nil, err
	}
	return comment, nil
}
