package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserExists   = errors.New("user with this name already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidName  = errors.New("user name must not be empty")
)

// Service implements the user registry
type Service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. The name is the primary key, so a duplicate
// registration surfaces as ErrUserExists.
func (s *Service) Create(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}

	if err := s.repo.CreateUser(ctx, name); err != nil {
		if errors.Is(err, ErrUserExists) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Get retrieves a user by name
func (s *Service) Get(ctx context.Context, name string) (*User, error) {
	user, err := s.repo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
