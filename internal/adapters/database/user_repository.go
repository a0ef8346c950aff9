package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bidhall/auctionhouse/internal/domain/users"
)

// PostgresUserRepository implements users.Repository using pgx
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// CreateUser inserts a new user row
func (r *PostgresUserRepository) CreateUser(ctx context.Context, name string) error {
	query := `
		INSERT INTO users (name)
		VALUES ($1)
	`
	_, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByName retrieves a user by name
func (r *PostgresUserRepository) GetUserByName(ctx context.Context, name string) (*users.User, error) {
	query := `
		SELECT name
		FROM users
		WHERE name = $1
	`
	var user users.User
	err := r.pool.QueryRow(ctx, query, name).Scan(&user.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
