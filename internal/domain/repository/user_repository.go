// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"genrelens/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the identity store: users keyed by Google ID, each with an append-only history.
type UserRepository interface {
	// FindOrCreate returns the user with the given Google ID, creating one with an empty
	// history if none exists. Concurrent calls for the same Google ID converge on one record.
	FindOrCreate(ctx context.Context, googleID, username string) (*entity.User, error)

	// FindByID retrieves a user without its history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// AppendHistory adds one entry to the end of the user's history.
	// Returns ErrUserNotFound if the user does not exist.
	AppendHistory(ctx context.Context, userID uuid.UUID, entry entity.HistoryEntry) error

	// ListHistory returns the user's history, oldest first.
	ListHistory(ctx context.Context, userID uuid.UUID) ([]entity.HistoryEntry, error)
}
