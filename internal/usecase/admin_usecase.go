package usecase

import (
	"context"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUpdateUserInput defines the user fields an administrator may change.
// Nil fields are left unchanged.
type AdminUpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// AdminUsecase defines the management operations available to administrators.
type AdminUsecase interface {
	// ListUsers retrieves every registered user.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// UpdateUser applies the provided changes, including role promotion.
	UpdateUser(ctx context.Context, userID uuid.UUID, input AdminUpdateUserInput) (*entity.User, error)

	// DeleteUser removes a user and everything they own.
	DeleteUser(ctx context.Context, userID uuid.UUID) error

	// ListPets retrieves every registered pet.
	ListPets(ctx context.Context) ([]*entity.Pet, error)

	// DeletePet removes any pet regardless of owner.
	DeletePet(ctx context.Context, petID uuid.UUID) error

	// ListStuckWalks retrieves unfinished walks older than the configured
	// cutoff.
	ListStuckWalks(ctx context.Context) ([]*entity.Walk, error)

	// ForceCompleteWalk closes a stuck walk. Only the end time and duration
	// are set; no distance, calories or points are derived.
	ForceCompleteWalk(ctx context.Context, walkID uuid.UUID) (*entity.Walk, error)

	// DeleteWalk removes any walk, finished or not.
	DeleteWalk(ctx context.Context, walkID uuid.UUID) error
}
