package impl

import (
	"context"
	"strings"
	"testing"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPetServiceForTest(petRepo *mockPetRepository, files *fakeFileStore) usecase.PetUsecase {
	return NewPetService(PetServiceParams{
		PetRepo:   petRepo,
		FileStore: files,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})
}

func TestPetService_CreatePet(t *testing.T) {
	ownerID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Pet) bool {
		return p.OwnerID == ownerID && p.Name == "Rex"
	})).Return(nil)

	srv := newPetServiceForTest(petRepo, &fakeFileStore{})

	pet, err := srv.CreatePet(context.Background(), ownerID, usecase.CreatePetInput{
		Name:  "Rex",
		Breed: "Border Collie",
		Age:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, pet.OwnerID)
	petRepo.AssertExpectations(t)
}

func TestPetService_GetPet_ForeignPet(t *testing.T) {
	ownerID := uuid.New()
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("FindByIDAndOwner", mock.Anything, petID, ownerID).
		Return(nil, repository.ErrPetNotFound)

	srv := newPetServiceForTest(petRepo, &fakeFileStore{})

	_, err := srv.GetPet(context.Background(), ownerID, petID)
	require.ErrorIs(t, err, domainerrors.ErrPetNotFound)
}

func TestPetService_UpdatePet_PartialPatch(t *testing.T) {
	ownerID := uuid.New()
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("FindByIDAndOwner", mock.Anything, petID, ownerID).
		Return(&entity.Pet{ID: petID, OwnerID: ownerID, Name: "Rex", Breed: "Border Collie", Age: 3}, nil)
	petRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Pet) bool {
		return p.Name == "Max" && p.Breed == "Border Collie" && p.Age == 4
	})).Return(nil)

	srv := newPetServiceForTest(petRepo, &fakeFileStore{})

	name := "Max"
	age := 4
	pet, err := srv.UpdatePet(context.Background(), ownerID, petID, usecase.UpdatePetInput{
		Name: &name,
		Age:  &age,
	})
	require.NoError(t, err)

	assert.Equal(t, "Max", pet.Name)
	assert.Equal(t, "Border Collie", pet.Breed)
	petRepo.AssertExpectations(t)
}

func TestPetService_DeletePet_ChecksOwnership(t *testing.T) {
	ownerID := uuid.New()
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("FindByIDAndOwner", mock.Anything, petID, ownerID).
		Return(nil, repository.ErrPetNotFound)

	srv := newPetServiceForTest(petRepo, &fakeFileStore{})

	err := srv.DeletePet(context.Background(), ownerID, petID)
	require.ErrorIs(t, err, domainerrors.ErrPetNotFound)
	petRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPetService_UploadPetPicture(t *testing.T) {
	ownerID := uuid.New()
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("FindByIDAndOwner", mock.Anything, petID, ownerID).
		Return(&entity.Pet{ID: petID, OwnerID: ownerID, Name: "Rex"}, nil).Twice()
	petRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Pet) bool {
		return strings.HasPrefix(p.ProfilePicture, "pets/"+petID.String()+"/")
	})).Return(nil)

	files := &fakeFileStore{}
	srv := newPetServiceForTest(petRepo, files)

	pet, err := srv.UploadPetPicture(context.Background(), ownerID, petID, usecase.UploadPictureInput{
		Filename:    "rex.jpg",
		ContentType: "image/jpeg",
		Size:        64,
		Content:     strings.NewReader("not really a jpeg"),
	})
	require.NoError(t, err)

	assert.Len(t, files.saved, 1)
	assert.True(t, strings.HasSuffix(pet.ProfilePicture, ".jpg"))
	petRepo.AssertExpectations(t)
}

func TestPetService_UploadPetPicture_TooLarge(t *testing.T) {
	ownerID := uuid.New()
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("FindByIDAndOwner", mock.Anything, petID, ownerID).
		Return(&entity.Pet{ID: petID, OwnerID: ownerID}, nil)

	files := &fakeFileStore{}
	srv := newPetServiceForTest(petRepo, files)

	_, err := srv.UploadPetPicture(context.Background(), ownerID, petID, usecase.UploadPictureInput{
		Filename:    "rex.jpg",
		ContentType: "image/jpeg",
		Size:        2 << 20,
		Content:     strings.NewReader("too big"),
	})
	require.ErrorIs(t, err, domainerrors.ErrUploadInvalidFile)
	assert.Empty(t, files.saved)
}
