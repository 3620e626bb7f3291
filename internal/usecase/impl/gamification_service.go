package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/domain/entity"
	"walkies/internal/domain/repository"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// gamificationService implements the GamificationUsecase interface.
type gamificationService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	walkRepo     repository.WalkRepository
	badgeRepo    repository.BadgeRepository
	rankingCache service.RankingCache
	logger       *slog.Logger
}

// GamificationServiceParams holds dependencies for gamificationService,
// injected by Fx.
type GamificationServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	WalkRepo     repository.WalkRepository
	BadgeRepo    repository.BadgeRepository
	RankingCache service.RankingCache
	Logger       *slog.Logger
}

// NewGamificationService is the constructor for gamificationService.
func NewGamificationService(params GamificationServiceParams) usecase.GamificationUsecase {
	return &gamificationService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		walkRepo:     params.WalkRepo,
		badgeRepo:    params.BadgeRepo,
		rankingCache: params.RankingCache,
		logger:       params.Logger,
	}
}

func (srv *gamificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListBadges retrieves every badge definition flagged with whether the
// requesting user has earned it.
func (srv *gamificationService) ListBadges(ctx context.Context, userID uuid.UUID) ([]usecase.BadgeWithStatus, error) {
	badges, err := srv.badgeRepo.ListBadges(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list badges")
	}

	awards, err := srv.badgeRepo.FindAwardsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load badge awards")
	}

	earnedAt := make(map[uuid.UUID]time.Time, len(awards))
	for _, award := range awards {
		earnedAt[award.BadgeID] = award.EarnedAt
	}

	result := make([]usecase.BadgeWithStatus, 0, len(badges))
	for _, badge := range badges {
		status := usecase.BadgeWithStatus{Badge: badge}
		if at, ok := earnedAt[badge.ID]; ok {
			status.Earned = true
			status.EarnedAt = &at
		}
		result = append(result, status)
	}

	return result, nil
}

// MyBadges retrieves the user's earned badges, newest first.
func (srv *gamificationService) MyBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	awards, err := srv.badgeRepo.FindAwardsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load badge awards")
	}

	return awards, nil
}

// EvaluateBadges checks every badge rule against the user's walk record and
// awards any badge newly satisfied. The whole pass runs in one transaction so
// a failure mid-award leaves no partial set visible; the unique index on
// (user_id, badge_id) makes concurrent passes safe.
func (srv *gamificationService) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error) {
	var awarded []*entity.Badge

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		badgeRepo := repoFactory.BadgeRepo()
		walkRepo := repoFactory.WalkRepo()
		userRepo := repoFactory.UserRepo()

		badges, err := badgeRepo.ListBadges(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list badges")
		}

		for _, badge := range badges {
			ok, err := srv.badgeSatisfied(ctx, walkRepo, userRepo, userID, badge)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			newlyAwarded, err := srv.award(ctx, badgeRepo, userID, badge)
			if err != nil {
				return err
			}
			if newlyAwarded {
				awarded = append(awarded, badge)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, badge := range awarded {
		srv.log(ctx).Info("Badge awarded",
			slog.String("user_id", userID.String()),
			slog.String("badge", badge.Name))
	}

	return awarded, nil
}

// badgeSatisfied evaluates a single badge rule against the user's record.
func (srv *gamificationService) badgeSatisfied(ctx context.Context, walkRepo repository.WalkRepository, userRepo repository.UserRepository, userID uuid.UUID, badge *entity.Badge) (bool, error) {
	switch badge.ConditionType {
	case entity.ConditionFirstWalk:
		count, err := walkRepo.CountByUser(ctx, userID)
		if err != nil {
			return false, errors.Wrap(err, "failed to count walks")
		}

		return count >= 1, nil

	case entity.ConditionDailyStreak:
		streak, err := srv.currentStreak(ctx, walkRepo, userID, badge.ConditionValue)
		if err != nil {
			return false, err
		}

		return streak >= badge.ConditionValue, nil

	case entity.ConditionTotalDistance:
		distance, err := walkRepo.SumDistanceByUser(ctx, userID)
		if err != nil {
			return false, errors.Wrap(err, "failed to sum walk distance")
		}

		return float64(badge.ConditionValue)*1000 <= distance, nil

	case entity.ConditionTotalPoints:
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return false, errors.Wrap(err, "failed to load user for points badge")
		}

		return user.TotalPoints >= badge.ConditionValue, nil
	}

	srv.logger.Warn("Unknown badge condition skipped", slog.String("condition", badge.ConditionType.String()))

	return false, nil
}

// currentStreak counts consecutive calendar days with at least one walk,
// scanning back from today and stopping at the first gap. The scan is capped
// at the target length since longer streaks change nothing.
func (srv *gamificationService) currentStreak(ctx context.Context, walkRepo repository.WalkRepository, userID uuid.UUID, target int) (int, error) {
	streak := 0
	for i := 0; i < target; i++ {
		day := time.Now().AddDate(0, 0, -i)

		walked, err := walkRepo.HasWalkOnDay(ctx, userID, day)
		if err != nil {
			return 0, errors.Wrap(err, "failed to check walk day")
		}
		if !walked {
			break
		}
		streak++
	}

	return streak, nil
}

// award inserts the user badge unless already held. It reports whether this
// call created the award; a duplicate insert lost to a concurrent pass counts
// as not newly awarded.
func (srv *gamificationService) award(ctx context.Context, badgeRepo repository.BadgeRepository, userID uuid.UUID, badge *entity.Badge) (bool, error) {
	held, err := badgeRepo.HasAward(ctx, userID, badge.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check badge award")
	}
	if held {
		return false, nil
	}

	err = badgeRepo.CreateAward(ctx, &entity.UserBadge{
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAward) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// periodStart translates a ranking period into its window start. A nil result
// means all time.
func periodStart(period usecase.RankingPeriod) *time.Time {
	var since time.Time
	switch period {
	case usecase.PeriodWeekly:
		since = time.Now().AddDate(0, 0, -7)
	case usecase.PeriodMonthly:
		since = time.Now().AddDate(0, 0, -30)
	default:
		return nil
	}

	return &since
}

// Ranking computes the points ranking over the given period. Rows are cached
// per period and limit; the requester's position is resolved per request.
func (srv *gamificationService) Ranking(ctx context.Context, userID uuid.UUID, period usecase.RankingPeriod, limit int) (*usecase.RankingOutput, error) {
	if !period.IsValid() {
		period = usecase.PeriodAllTime
	}
	if limit <= 0 {
		limit = 50
	}

	since := periodStart(period)

	cacheKey := fmt.Sprintf("%s:%d", period, limit)
	rows, hit := srv.rankingCache.Get(ctx, cacheKey)
	if !hit {
		var err error
		rows, err = srv.fetchRankRows(ctx, since, limit)
		if err != nil {
			return nil, err
		}
		srv.rankingCache.Set(ctx, cacheKey, rows)
	}

	entries := make([]usecase.RankingEntry, 0, len(rows))
	position := 0
	for i, row := range rows {
		entry := usecase.RankingEntry{
			Position:       i + 1,
			UserID:         row.UserID,
			Name:           row.Name,
			ProfilePicture: row.ProfilePicture,
			Points:         row.Points,
			IsCurrentUser:  row.UserID == userID,
		}
		if entry.IsCurrentUser {
			position = entry.Position
		}
		entries = append(entries, entry)
	}

	if position == 0 {
		points, err := srv.walkRepo.SumPointsSince(ctx, userID, since)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sum requester points")
		}

		better, err := srv.walkRepo.CountUsersWithMorePoints(ctx, points, since)
		if err != nil {
			return nil, errors.Wrap(err, "failed to place requester")
		}
		position = int(better) + 1
	}

	return &usecase.RankingOutput{
		Entries:         entries,
		CurrentPosition: position,
		Period:          period,
	}, nil
}

func (srv *gamificationService) fetchRankRows(ctx context.Context, since *time.Time, limit int) ([]repository.RankRow, error) {
	ranked, err := srv.walkRepo.RankUsersByPoints(ctx, since, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank users")
	}

	rows := make([]repository.RankRow, 0, len(ranked))
	for _, row := range ranked {
		rows = append(rows, *row)
	}

	return rows, nil
}

// Leaderboard retrieves the top users by lifetime points.
func (srv *gamificationService) Leaderboard(ctx context.Context, userID uuid.UUID) ([]usecase.RankingEntry, error) {
	top, err := srv.userRepo.TopByPoints(ctx, 10)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load leaderboard")
	}

	entries := make([]usecase.RankingEntry, 0, len(top))
	for i, user := range top {
		entries = append(entries, usecase.RankingEntry{
			Position:       i + 1,
			UserID:         user.ID,
			Name:           user.Name,
			ProfilePicture: user.ProfilePicture,
			Points:         user.TotalPoints,
			IsCurrentUser:  user.ID == userID,
		})
	}

	return entries, nil
}

// Challenges retrieves the recurring goals with the user's live progress.
// The catalog is static for now; progress comes from the walk aggregates.
func (srv *gamificationService) Challenges(ctx context.Context, userID uuid.UUID) ([]usecase.Challenge, error) {
	now := time.Now()

	today, err := srv.walkRepo.StatsOnDay(ctx, userID, now)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load today's walks")
	}

	// Week starts on Monday, month on the 1st.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -daysSinceMonday)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	weekDistance, err := srv.walkRepo.SumDistanceSince(ctx, userID, weekStart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum weekly distance")
	}

	monthDistance, err := srv.walkRepo.SumDistanceSince(ctx, userID, monthStart)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sum monthly distance")
	}

	return []usecase.Challenge{
		{
			ID:           1,
			Title:        "Daily Walk",
			Description:  "Take at least one walk today",
			Type:         "daily",
			Target:       1,
			Progress:     today.Walks,
			RewardPoints: 50,
			Completed:    today.Walks >= 1,
		},
		{
			ID:           2,
			Title:        "Weekly Explorer",
			Description:  "Walk at least 10 km this week",
			Type:         "weekly",
			Target:       10000,
			Progress:     int(weekDistance),
			RewardPoints: 200,
			Completed:    weekDistance >= 10000,
		},
		{
			ID:           3,
			Title:        "Monthly Marathoner",
			Description:  "Accumulate 50 km of walks this month",
			Type:         "monthly",
			Target:       50000,
			Progress:     int(monthDistance),
			RewardPoints: 500,
			Completed:    monthDistance >= 50000,
		},
	}, nil
}
