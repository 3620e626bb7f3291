package impl

import (
	"context"
	"log/slog"

	"walkies/config"
	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// petService implements the PetUsecase interface.
type petService struct {
	petRepo      repository.PetRepository
	fileStore    service.FileStore
	maxUploadLen int64
	logger       *slog.Logger
}

// PetServiceParams holds dependencies for petService, injected by Fx.
type PetServiceParams struct {
	fx.In

	PetRepo   repository.PetRepository
	FileStore service.FileStore
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPetService is the constructor for petService.
func NewPetService(params PetServiceParams) usecase.PetUsecase {
	var maxUploadLen int64
	if params.Config != nil && params.Config.Uploads != nil {
		maxUploadLen = params.Config.Uploads.MaxSizeBytes
	}

	return &petService{
		petRepo:      params.PetRepo,
		fileStore:    params.FileStore,
		maxUploadLen: maxUploadLen,
		logger:       params.Logger,
	}
}

func (srv *petService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePet registers a new pet for the owner.
func (srv *petService) CreatePet(ctx context.Context, ownerID uuid.UUID, input usecase.CreatePetInput) (*entity.Pet, error) {
	pet := &entity.Pet{
		Name:           input.Name,
		Breed:          input.Breed,
		Age:            input.Age,
		Weight:         input.Weight,
		ProfilePicture: input.ProfilePicture,
		Preferences:    input.Preferences,
		OwnerID:        ownerID,
	}

	if err := srv.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Pet registered",
		slog.String("pet_id", pet.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return pet, nil
}

// ListPets retrieves all pets owned by the user.
func (srv *petService) ListPets(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
	pets, err := srv.petRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pets")
	}

	return pets, nil
}

// GetPet retrieves one of the owner's pets.
func (srv *petService) GetPet(ctx context.Context, ownerID, petID uuid.UUID) (*entity.Pet, error) {
	pet, err := srv.petRepo.FindByIDAndOwner(ctx, petID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, domainerrors.ErrPetNotFound
		}

		return nil, errors.Wrap(err, "failed to find pet")
	}

	return pet, nil
}

// UpdatePet applies the provided changes to one of the owner's pets.
func (srv *petService) UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, input usecase.UpdatePetInput) (*entity.Pet, error) {
	pet, err := srv.GetPet(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Age != nil {
		pet.Age = *input.Age
	}
	if input.Weight != nil {
		pet.Weight = *input.Weight
	}
	if input.ProfilePicture != nil {
		pet.ProfilePicture = *input.ProfilePicture
	}
	if input.Preferences != nil {
		pet.Preferences = *input.Preferences
	}

	if err := srv.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

// DeletePet removes one of the owner's pets.
func (srv *petService) DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	if _, err := srv.GetPet(ctx, ownerID, petID); err != nil {
		return err
	}

	if err := srv.petRepo.Delete(ctx, petID); err != nil {
		return errors.Wrap(err, "failed to delete pet")
	}

	srv.log(ctx).Info("Pet deleted", slog.String("pet_id", petID.String()))

	return nil
}

// UploadPetPicture stores the image and records its key on the pet.
func (srv *petService) UploadPetPicture(ctx context.Context, ownerID, petID uuid.UUID, input usecase.UploadPictureInput) (*entity.Pet, error) {
	if _, err := srv.GetPet(ctx, ownerID, petID); err != nil {
		return nil, err
	}

	key, err := storePicture(ctx, srv.fileStore, srv.maxUploadLen, "pets/"+petID.String(), input)
	if err != nil {
		return nil, err
	}

	return srv.UpdatePet(ctx, ownerID, petID, usecase.UpdatePetInput{ProfilePicture: &key})
}
