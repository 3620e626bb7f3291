package impl

import (
	"context"
	"testing"
	"time"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminServiceForTest(userRepo *mockUserRepository, petRepo *mockPetRepository, walkRepo *mockWalkRepository) usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		UserRepo: userRepo,
		PetRepo:  petRepo,
		WalkRepo: walkRepo,
		Config:   newTestConfig(),
		Logger:   newDiscardLogger(),
	})
}

func TestAdminService_UpdateUser_PromotesRole(t *testing.T) {
	userID := uuid.New()
	userRepo := new(mockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Name: "Sam", Email: "sam@example.com", Role: entity.RoleUser}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleAdmin
	})).Return(nil)

	srv := newAdminServiceForTest(userRepo, new(mockPetRepository), new(mockWalkRepository))

	role := "admin"
	updated, err := srv.UpdateUser(context.Background(), userID, usecase.AdminUpdateUserInput{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, updated.Role)
	userRepo.AssertExpectations(t)
}

func TestAdminService_UpdateUser_RejectsUnknownRole(t *testing.T) {
	userID := uuid.New()
	userRepo := new(mockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Role: entity.RoleUser}, nil)

	srv := newAdminServiceForTest(userRepo, new(mockPetRepository), new(mockWalkRepository))

	role := "superuser"
	_, err := srv.UpdateUser(context.Background(), userID, usecase.AdminUpdateUserInput{Role: &role})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminService_UpdateUser_NormalizesEmail(t *testing.T) {
	userID := uuid.New()
	userRepo := new(mockUserRepository)
	userRepo.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "old@example.com", Role: entity.RoleUser}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com"
	})).Return(nil)

	srv := newAdminServiceForTest(userRepo, new(mockPetRepository), new(mockWalkRepository))

	email := "  New@Example.COM "
	_, err := srv.UpdateUser(context.Background(), userID, usecase.AdminUpdateUserInput{Email: &email})
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAdminService_ListStuckWalks_UsesCutoff(t *testing.T) {
	walkRepo := new(mockWalkRepository)
	walkRepo.On("FindStuck", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-4 * time.Hour)

		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return([]*entity.Walk{{ID: uuid.New()}}, nil)

	srv := newAdminServiceForTest(new(mockUserRepository), new(mockPetRepository), walkRepo)

	walks, err := srv.ListStuckWalks(context.Background())
	require.NoError(t, err)

	assert.Len(t, walks, 1)
	walkRepo.AssertExpectations(t)
}

func TestAdminService_ForceCompleteWalk_SkipsMetrics(t *testing.T) {
	walkID := uuid.New()
	started := time.Now().Add(-6 * time.Hour)
	walkRepo := new(mockWalkRepository)
	walkRepo.On("FindByID", mock.Anything, walkID).
		Return(&entity.Walk{ID: walkID, StartTime: started, Route: []entity.RoutePoint{{Lat: 1, Lng: 2}, {Lat: 1.1, Lng: 2.1}}}, nil)
	walkRepo.On("Update", mock.Anything, mock.MatchedBy(func(w *entity.Walk) bool {
		return w.EndTime != nil && w.Duration > 0 &&
			w.Distance == 0 && w.Calories == 0 && w.PointsEarned == 0
	})).Return(nil)

	srv := newAdminServiceForTest(new(mockUserRepository), new(mockPetRepository), walkRepo)

	walk, err := srv.ForceCompleteWalk(context.Background(), walkID)
	require.NoError(t, err)

	assert.True(t, walk.IsFinished())
	assert.Zero(t, walk.PointsEarned)
	walkRepo.AssertExpectations(t)
}

func TestAdminService_ForceCompleteWalk_AlreadyFinished(t *testing.T) {
	walkID := uuid.New()
	endTime := time.Now()
	walkRepo := new(mockWalkRepository)
	walkRepo.On("FindByID", mock.Anything, walkID).
		Return(&entity.Walk{ID: walkID, EndTime: &endTime}, nil)

	srv := newAdminServiceForTest(new(mockUserRepository), new(mockPetRepository), walkRepo)

	_, err := srv.ForceCompleteWalk(context.Background(), walkID)
	require.ErrorIs(t, err, domainerrors.ErrWalkAlreadyFinished)
	walkRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminService_DeletePet_NotFound(t *testing.T) {
	petID := uuid.New()
	petRepo := new(mockPetRepository)
	petRepo.On("Delete", mock.Anything, petID).Return(repository.ErrPetNotFound)

	srv := newAdminServiceForTest(new(mockUserRepository), petRepo, new(mockWalkRepository))

	err := srv.DeletePet(context.Background(), petID)
	require.ErrorIs(t, err, domainerrors.ErrPetNotFound)
}
