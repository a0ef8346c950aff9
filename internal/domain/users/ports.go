package users

import "context"

// Repository defines the interface for user persistence
type Repository interface {
	// CreateUser inserts a new user. Returns ErrUserExists when the name is
	// already taken.
	CreateUser(ctx context.Context, name string) error

	// GetUserByName retrieves a user by name. Returns ErrUserNotFound when
	// no such user exists.
	GetUserByName(ctx context.Context, name string) (*User, error)
}
