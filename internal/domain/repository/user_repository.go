// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List retrieves all users ordered by creation time, for the admin console.
	List(ctx context.Context) ([]*entity.User, error)

	// TopByPoints retrieves the highest scoring users ordered by their running
	// total-points counter.
	TopByPoints(ctx context.Context, limit int) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// AddPoints atomically increments the user's running total-points counter.
	AddPoints(ctx context.Context, id uuid.UUID, points int) error

	// Delete removes a user and cascades to their pets, walks and badge awards.
	Delete(ctx context.Context, id uuid.UUID) error
}
