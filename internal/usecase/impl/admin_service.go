package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"walkies/config"
	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo   repository.UserRepository
	petRepo    repository.PetRepository
	walkRepo   repository.WalkRepository
	stuckAfter time.Duration
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	PetRepo  repository.PetRepository
	WalkRepo repository.WalkRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	stuckAfter := 4 * time.Hour
	if params.Config != nil && params.Config.Walks != nil && params.Config.Walks.StuckAfter > 0 {
		stuckAfter = params.Config.Walks.StuckAfter
	}

	return &adminService{
		userRepo:   params.UserRepo,
		petRepo:    params.PetRepo,
		walkRepo:   params.WalkRepo,
		stuckAfter: stuckAfter,
		logger:     params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers retrieves every registered user.
func (srv *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// UpdateUser applies the provided changes, including role promotion.
func (srv *adminService) UpdateUser(ctx context.Context, userID uuid.UUID, input usecase.AdminUpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if input.Role != nil {
		role := entity.Role(*input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("role must be one of: user, admin")
		}
		user.Role = role
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated by admin", slog.String("user_id", userID.String()))

	return user, nil
}

// DeleteUser removes a user and everything they own.
func (srv *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted by admin", slog.String("user_id", userID.String()))

	return nil
}

// ListPets retrieves every registered pet.
func (srv *adminService) ListPets(ctx context.Context) ([]*entity.Pet, error) {
	pets, err := srv.petRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pets")
	}

	return pets, nil
}

// DeletePet removes any pet regardless of owner.
func (srv *adminService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	if err := srv.petRepo.Delete(ctx, petID); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return domainerrors.ErrPetNotFound
		}

		return errors.Wrap(err, "failed to delete pet")
	}

	srv.log(ctx).Info("Pet deleted by admin", slog.String("pet_id", petID.String()))

	return nil
}

// ListStuckWalks retrieves unfinished walks older than the configured cutoff.
func (srv *adminService) ListStuckWalks(ctx context.Context) ([]*entity.Walk, error) {
	cutoff := time.Now().Add(-srv.stuckAfter)

	walks, err := srv.walkRepo.FindStuck(ctx, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stuck walks")
	}

	return walks, nil
}

// ForceCompleteWalk closes a stuck walk. Only the end time and duration are
// set; no distance, calories or points are derived and nothing is credited.
func (srv *adminService) ForceCompleteWalk(ctx context.Context, walkID uuid.UUID) (*entity.Walk, error) {
	walk, err := srv.walkRepo.FindByID(ctx, walkID)
	if err != nil {
		if errors.Is(err, repository.ErrWalkNotFound) {
			return nil, domainerrors.ErrWalkNotFound
		}

		return nil, errors.Wrap(err, "failed to find walk")
	}

	if walk.IsFinished() {
		return nil, domainerrors.ErrWalkAlreadyFinished
	}

	end := time.Now()
	walk.EndTime = &end
	walk.Duration = int(end.Sub(walk.StartTime).Seconds())

	if err := srv.walkRepo.Update(ctx, walk); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Walk force-completed by admin", slog.String("walk_id", walkID.String()))

	return walk, nil
}

// DeleteWalk removes any walk, finished or not.
func (srv *adminService) DeleteWalk(ctx context.Context, walkID uuid.UUID) error {
	if err := srv.walkRepo.Delete(ctx, walkID); err != nil {
		if errors.Is(err, repository.ErrWalkNotFound) {
			return domainerrors.ErrWalkNotFound
		}

		return errors.Wrap(err, "failed to delete walk")
	}

	srv.log(ctx).Info("Walk deleted by admin", slog.String("walk_id", walkID.String()))

	return nil
}
