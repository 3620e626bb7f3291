package usecase

import (
	"context"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePetInput defines the data required to register a pet.
type CreatePetInput struct {
	Name           string
	Breed          string
	Age            int
	Weight         float64
	ProfilePicture string
	Preferences    string
}

// UpdatePetInput defines the mutable pet fields. Nil fields are left unchanged.
type UpdatePetInput struct {
	Name           *string
	Breed          *string
	Age            *int
	Weight         *float64
	ProfilePicture *string
	Preferences    *string
}

// PetUsecase defines the interface for pet management operations. Every
// operation is scoped to the owning user.
type PetUsecase interface {
	// CreatePet registers a new pet for the owner.
	CreatePet(ctx context.Context, ownerID uuid.UUID, input CreatePetInput) (*entity.Pet, error)

	// ListPets retrieves all pets owned by the user.
	ListPets(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error)

	// GetPet retrieves one of the owner's pets.
	GetPet(ctx context.Context, ownerID, petID uuid.UUID) (*entity.Pet, error)

	// UpdatePet applies the provided changes to one of the owner's pets.
	UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, input UpdatePetInput) (*entity.Pet, error)

	// DeletePet removes one of the owner's pets.
	DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error

	// UploadPetPicture stores the image and records its key on the pet.
	UploadPetPicture(ctx context.Context, ownerID, petID uuid.UUID, input UploadPictureInput) (*entity.Pet, error)
}
