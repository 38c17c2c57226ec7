package services

import (
	"errors"
	"time"

	"quillblog/app/auth"
	"quillblog/app/models"
	"quillblog/app/repositories"
)

const minPasswordLength = 8

// UserService manages accounts and credential checks
type UserService struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *UserService) CreateUser(username, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, fieldError("password", "This password is too short. It must contain at least 8 characters.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	user.BeforeCreate(s.now())
	if err := user.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, fieldError("username", "A user with that username already exists.")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose credentials match, or auth.ErrInvalidCredentials.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ListUsers returns every account, used for the author choices on the post form
func (s *UserService) ListUsers() ([]*models.User, error) {
	return s.userRepo.List()
}
