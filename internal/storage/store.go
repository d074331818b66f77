// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ksagarwal/settlr/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for settlr's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateRun persists a settlement run. ID, Title, and CreatedAt are
	// populated by the store when unset.
	CreateRun(ctx context.Context, run *models.Run) error

	// GetRun retrieves a run by ID, including participants and transfers
	// in their original order. Returns ErrNotFound if no such run exists.
	GetRun(ctx context.Context, runID string) (*models.Run, error)

	// ListRunsByUser returns the runs created by userID, newest first.
	ListRunsByUser(ctx context.Context, userID string) ([]*models.Run, error)

	// DeleteRun removes a run. Returns ErrNotFound if no such run exists.
	DeleteRun(ctx context.Context, runID string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) when no user has that ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
