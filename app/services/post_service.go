package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"quillblog/app/models"
	"quillblog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	now         func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// CreatePost stores a new draft. Publication only happens through Publish.
func (s *PostService) CreatePost(post *models.Post) error {
	post.PublishedAt = nil
	post.BeforeCreate(s.now())

	if err := s.validate(post); err != nil {
		return err
	}
	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID with its author and all of its comments
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, c := range comments {
		if err := post.AddComment(c); err != nil {
			return nil, err
		}
	}

	if err := s.attachAuthor(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPublishedPost is GetPost restricted to posts visible to the public.
func (s *PostService) GetPublishedPost(id int) (*models.Post, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished(s.now()) {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// ListPublished returns posts published at or before now, newest publication first.
func (s *PostService) ListPublished() ([]*models.Post, error) {
	now := s.now()
	posts, err := s.filter(func(p *models.Post) bool { return p.IsPublished(now) })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(*posts[j].PublishedAt)
	})
	return posts, nil
}

// ListDrafts returns never-published posts, oldest first.
func (s *PostService) ListDrafts() ([]*models.Post, error) {
	posts, err := s.filter((*models.Post).IsDraft)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *PostService) filter(keep func(*models.Post) bool) ([]*models.Post, error) {
	all, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}

	var posts []*models.Post
	for _, post := range all {
		if !keep(post) {
			continue
		}
		comments, err := s.commentRepo.ListByPost(post.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments for post %d: %w", post.ID, err)
		}
		post.Comments = comments
		if err := s.attachAuthor(post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// UpdatePost replaces the editable fields of an existing post
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	post.CreatedAt = existing.CreatedAt
	post.PublishedAt = existing.PublishedAt

	if err := s.validate(post); err != nil {
		return err
	}
	return s.postRepo.Update(post)
}

// Publish stamps the post with the current time and persists it.
func (s *PostService) Publish(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	post.Publish(s.now())
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to publish post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id int) error {
	return s.postRepo.Delete(id)
}

func (s *PostService) validate(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return validationError(err)
	}

	if _, err := s.userRepo.GetByID(post.AuthorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fieldError("author", "Select a valid choice. That choice is not one of the available choices.")
		}
		return err
	}
	return nil
}

func (s *PostService) attachAuthor(post *models.Post) error {
	author, err := s.userRepo.GetByID(post.AuthorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get author of post %d: %w", post.ID, err)
	}
	post.Author = author
	return nil
}
