package impl

import (
	"context"
	"log/slog"
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

// walkService implements the WalkUsecase interface. Finalization runs inside
// a transaction; badge evaluation follows as a separate idempotent step so a
// crash in between leaves a finalized walk that a later evaluation can still
// pick up.
type walkService struct {
	txManager       repository.TransactionManager
	walkRepo        repository.WalkRepository
	petRepo         repository.PetRepository
	gamification    usecase.GamificationUsecase
	walkerWeightKg  float64
	historyPageSize int
	logger          *slog.Logger
}

// WalkServiceParams holds dependencies for walkService, injected by Fx.
type WalkServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	WalkRepo     repository.WalkRepository
	PetRepo      repository.PetRepository
	Gamification usecase.GamificationUsecase
	Config       *config.Config
	Logger       *slog.Logger
}

// NewWalkService is the constructor for walkService.
func NewWalkService(params WalkServiceParams) usecase.WalkUsecase {
	weight := defaultWalkerWeightKg
	pageSize := 10
	if params.Config != nil && params.Config.Walks != nil {
		if params.Config.Walks.DefaultWeightKg > 0 {
			weight = params.Config.Walks.DefaultWeightKg
		}
		if params.Config.Walks.HistoryPageSize > 0 {
			pageSize = params.Config.Walks.HistoryPageSize
		}
	}

	return &walkService{
		txManager:       params.TxManager,
		walkRepo:        params.WalkRepo,
		petRepo:         params.PetRepo,
		gamification:    params.Gamification,
		walkerWeightKg:  weight,
		historyPageSize: pageSize,
		logger:          params.Logger,
	}
}

func (srv *walkService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartWalk opens a walk session for one of the user's pets. The
// check-then-insert runs in a transaction and the walks table carries a
// partial unique index on (user_id) for unfinished rows, so two concurrent
// starts cannot both succeed.
func (srv *walkService) StartWalk(ctx context.Context, userID uuid.UUID, input usecase.StartWalkInput) (*entity.Walk, error) {
	var walk *entity.Walk

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		petRepo := repoFactory.PetRepo()
		walkRepo := repoFactory.WalkRepo()

		if _, err := petRepo.FindByIDAndOwner(ctx, input.PetID, userID); err != nil {
			if errors.Is(err, repository.ErrPetNotFound) {
				return domainerrors.ErrPetNotFound
			}

			return errors.Wrap(err, "failed to verify pet ownership")
		}

		if _, err := walkRepo.FindActiveByUser(ctx, userID); err == nil {
			return domainerrors.ErrWalkAlreadyActive
		} else if !errors.Is(err, repository.ErrWalkNotFound) {
			return errors.Wrap(err, "failed to check for an active walk")
		}

		walk = &entity.Walk{
			StartTime: time.Now(),
			UserID:    userID,
			PetID:     input.PetID,
		}
		if err := walkRepo.Create(ctx, walk); err != nil {
			if errors.Is(err, repository.ErrActiveWalkExists) {
				return domainerrors.ErrWalkAlreadyActive
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Walk started",
		slog.String("walk_id", walk.ID.String()),
		slog.String("pet_id", input.PetID.String()))

	return walk, nil
}

// UpdateWalk replaces the route snapshot of the user's unfinished walk.
func (srv *walkService) UpdateWalk(ctx context.Context, userID, walkID uuid.UUID, input usecase.UpdateWalkInput) (*entity.Walk, error) {
	walk, err := srv.WalkDetails(ctx, userID, walkID)
	if err != nil {
		return nil, err
	}

	if walk.IsFinished() {
		return nil, domainerrors.ErrWalkAlreadyFinished
	}

	if input.Route != nil {
		walk.Route = input.Route
	}

	if err := srv.walkRepo.Update(ctx, walk); err != nil {
		return nil, err
	}

	return walk, nil
}

// FinishWalk finalizes the walk and then evaluates badge awards. It returns
// the finalized walk plus any badges awarded by this call.
func (srv *walkService) FinishWalk(ctx context.Context, userID, walkID uuid.UUID, input usecase.FinishWalkInput) (*entity.Walk, []*entity.Badge, error) {
	var walk *entity.Walk

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		walkRepo := repoFactory.WalkRepo()
		userRepo := repoFactory.UserRepo()

		found, err := walkRepo.FindByIDAndUser(ctx, walkID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrWalkNotFound) {
				return domainerrors.ErrWalkNotFound
			}

			return errors.Wrap(err, "failed to find walk")
		}

		if found.IsFinished() {
			return domainerrors.ErrWalkAlreadyFinished
		}

		srv.finalize(found, input, time.Now())

		if err := walkRepo.Update(ctx, found); err != nil {
			return err
		}
		if found.PointsEarned > 0 {
			if err := userRepo.AddPoints(ctx, userID, found.PointsEarned); err != nil {
				return errors.Wrap(err, "failed to credit walk points")
			}
		}

		walk = found

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	srv.log(ctx).Info("Walk finished",
		slog.String("walk_id", walk.ID.String()),
		slog.Float64("distance_m", walk.Distance),
		slog.Int("points", walk.PointsEarned))

	awarded, err := srv.gamification.EvaluateBadges(ctx, userID)
	if err != nil {
		// The walk is already finalized; a failed evaluation is recoverable
		// on the next finish, so report the walk and log the failure.
		srv.log(ctx).Error("Badge evaluation failed after finalize",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))

		return walk, nil, nil
	}

	return walk, awarded, nil
}

// finalize applies the derived-metric computations. Metrics and points are
// only produced when both distance and duration are positive; an empty walk
// still finalizes, with the derived fields left zero.
func (srv *walkService) finalize(walk *entity.Walk, input usecase.FinishWalkInput, now time.Time) {
	end := now
	walk.EndTime = &end
	walk.Duration = int(end.Sub(walk.StartTime).Seconds())

	if input.Route != nil {
		walk.Route = input.Route
	}
	walk.Distance = computeRouteDistance(walk.Route)

	if walk.Distance > 0 && walk.Duration > 0 {
		durationS := float64(walk.Duration)
		walk.AveragePace = computeAveragePace(walk.Distance, durationS)
		walk.Calories = computeCalories(walk.Distance, durationS, srv.walkerWeightKg)
		walk.PointsEarned = computePoints(walk.Distance, durationS)
	}

	if input.Feedback != "" {
		walk.Feedback = input.Feedback
	}
}

// ActiveWalk retrieves the user's unfinished walk, if any.
func (srv *walkService) ActiveWalk(ctx context.Context, userID uuid.UUID) (*entity.Walk, error) {
	walk, err := srv.walkRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalkNotFound) {
			return nil, domainerrors.ErrNoActiveWalk
		}

		return nil, errors.Wrap(err, "failed to find active walk")
	}

	return walk, nil
}

// WalkHistory retrieves a page of the user's finalized walks, newest first.
func (srv *walkService) WalkHistory(ctx context.Context, userID uuid.UUID, page int) (*usecase.WalkHistoryOutput, error) {
	if page < 1 {
		page = 1
	}

	walks, total, err := srv.walkRepo.FindFinishedByUser(ctx, userID, page, srv.historyPageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load walk history")
	}

	totalPages := int((total + int64(srv.historyPageSize) - 1) / int64(srv.historyPageSize))

	return &usecase.WalkHistoryOutput{
		Walks:      walks,
		Total:      total,
		Page:       page,
		PageSize:   srv.historyPageSize,
		TotalPages: totalPages,
	}, nil
}

// WalkDetails retrieves a single walk owned by the user.
func (srv *walkService) WalkDetails(ctx context.Context, userID, walkID uuid.UUID) (*entity.Walk, error) {
	walk, err := srv.walkRepo.FindByIDAndUser(ctx, walkID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalkNotFound) {
			return nil, domainerrors.ErrWalkNotFound
		}

		return nil, errors.Wrap(err, "failed to find walk")
	}

	return walk, nil
}
