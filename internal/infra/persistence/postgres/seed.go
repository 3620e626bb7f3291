package postgres

import (
	"context"
	"log/slog"

	"walkies/internal/domain/entity"
	"walkies/internal/domain/repository"

	"github.com/pkg/errors"
)

// seedBadges is the static achievement catalog. Names are unique; condition
// values are days for streaks, kilometers for distance tiers and points for
// point tiers.
var seedBadges = []entity.Badge{
	{Name: "First Walk", Description: "Congratulations on your first walk!", ConditionType: entity.ConditionFirstWalk},
	{Name: "Dedicated Walker", Description: "Walked 7 days in a row", ConditionType: entity.ConditionDailyStreak, ConditionValue: 7},
	{Name: "Beginner Explorer", Description: "Walked a total of 5 km", ConditionType: entity.ConditionTotalDistance, ConditionValue: 5},
	{Name: "Adventurer", Description: "Walked a total of 25 km", ConditionType: entity.ConditionTotalDistance, ConditionValue: 25},
	{Name: "Marathoner", Description: "Walked a total of 100 km", ConditionType: entity.ConditionTotalDistance, ConditionValue: 100},
	{Name: "Walking Legend", Description: "Walked a total of 500 km", ConditionType: entity.ConditionTotalDistance, ConditionValue: 500},
	{Name: "Bronze Scorer", Description: "Accumulated 1000 points", ConditionType: entity.ConditionTotalPoints, ConditionValue: 1000, PointsRequired: 1000},
	{Name: "Silver Scorer", Description: "Accumulated 5000 points", ConditionType: entity.ConditionTotalPoints, ConditionValue: 5000, PointsRequired: 5000},
	{Name: "Gold Scorer", Description: "Accumulated 10000 points", ConditionType: entity.ConditionTotalPoints, ConditionValue: 10000, PointsRequired: 10000},
}

// SeedBadges inserts any badge definitions that do not exist yet. It is safe
// to run on every startup; existing badges are left untouched.
func SeedBadges(ctx context.Context, badgeRepo repository.BadgeRepository, logger *slog.Logger) error {
	created := 0
	for i := range seedBadges {
		badge := seedBadges[i]

		_, err := badgeRepo.FindBadgeByName(ctx, badge.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrBadgeNotFound) {
			return errors.Wrap(err, "failed to look up badge during seeding")
		}

		if err := badgeRepo.CreateBadge(ctx, &badge); err != nil {
			return errors.Wrapf(err, "failed to seed badge %q", badge.Name)
		}
		created++
	}

	if created > 0 {
		logger.Info("Seeded badge catalog", slog.Int("created", created))
	}

	return nil
}
