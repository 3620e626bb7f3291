package postgres

import (
	"context"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// petRepository implements the repository.PetRepository interface using GORM.
type petRepository struct {
	db *gorm.DB
}

// NewPetRepository is the constructor for petRepository.
func NewPetRepository(db *gorm.DB) repository.PetRepository {
	return &petRepository{db: db}
}

// FindByID retrieves a single pet by its unique ID.
func (repo *petRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
	var petM model.PetModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&petM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPetNotFound
		}

		return nil, errors.Wrap(err, "failed to find pet by id")
	}

	return toPetDomain(&petM), nil
}

// FindByIDAndOwner retrieves a pet only when it belongs to the given owner.
func (repo *petRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Pet, error) {
	var petM model.PetModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&petM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPetNotFound
		}

		return nil, errors.Wrap(err, "failed to find pet by id and owner")
	}

	return toPetDomain(&petM), nil
}

// FindByOwner retrieves all pets belonging to a user.
func (repo *petRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
	var petModels []*model.PetModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&petModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pets by owner")
	}

	return toPetDomainSlice(petModels), nil
}

// List retrieves all pets, for the admin console.
func (repo *petRepository) List(ctx context.Context) ([]*entity.Pet, error) {
	var petModels []*model.PetModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&petModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pets")
	}

	return toPetDomainSlice(petModels), nil
}

// Create persists a new pet entity to the database.
func (repo *petRepository) Create(ctx context.Context, pet *entity.Pet) error {
	petM := fromPetDomain(pet)

	if err := repo.db.WithContext(ctx).Create(petM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required pet information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create pet")
	}

	pet.ID = petM.ID
	pet.CreatedAt = petM.CreatedAt
	pet.UpdatedAt = petM.UpdatedAt

	return nil
}

// Update modifies an existing pet entity in the database.
func (repo *petRepository) Update(ctx context.Context, pet *entity.Pet) error {
	petM := fromPetDomain(pet)

	if err := repo.db.WithContext(ctx).Save(petM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update pet")
	}

	pet.UpdatedAt = petM.UpdatedAt

	return nil
}

// Delete removes a pet.
func (repo *petRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PetModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete pet")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPetNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toPetDomain(data *model.PetModel) *entity.Pet {
	if data == nil {
		return nil
	}

	return &entity.Pet{
		ID:             data.ID,
		Name:           data.Name,
		Breed:          data.Breed,
		Age:            data.Age,
		Weight:         data.Weight,
		ProfilePicture: data.ProfilePicture,
		Preferences:    data.Preferences,
		OwnerID:        data.OwnerID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toPetDomainSlice(data []*model.PetModel) []*entity.Pet {
	pets := make([]*entity.Pet, 0, len(data))
	for _, petM := range data {
		pets = append(pets, toPetDomain(petM))
	}

	return pets
}

func fromPetDomain(data *entity.Pet) *model.PetModel {
	if data == nil {
		return nil
	}

	return &model.PetModel{
		ID:             data.ID,
		Name:           data.Name,
		Breed:          data.Breed,
		Age:            data.Age,
		Weight:         data.Weight,
		ProfilePicture: data.ProfilePicture,
		Preferences:    data.Preferences,
		OwnerID:        data.OwnerID,
	}
}
