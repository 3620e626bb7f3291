package repository

import (
	"context"
	"errors"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPetNotFound is a domain-specific error returned when a pet is not found.
var ErrPetNotFound = errors.New("pet not found")

// PetRepository defines the standard operations for pet persistence.
type PetRepository interface {
	// FindByID retrieves a single pet by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error)

	// FindByIDAndOwner retrieves a pet only when it belongs to the given owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Pet, error)

	// FindByOwner retrieves all pets belonging to a user.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error)

	// List retrieves all pets, for the admin console.
	List(ctx context.Context) ([]*entity.Pet, error)

	// Create persists a new pet entity to the storage.
	Create(ctx context.Context, pet *entity.Pet) error

	// Update modifies an existing pet entity in the storage.
	Update(ctx context.Context, pet *entity.Pet) error

	// Delete removes a pet.
	Delete(ctx context.Context, id uuid.UUID) error
}
