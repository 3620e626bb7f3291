package usecase

import (
	"context"
	"time"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// RankingPeriod selects the time window a ranking is computed over.
type RankingPeriod string

const (
	PeriodWeekly  RankingPeriod = "weekly"
	PeriodMonthly RankingPeriod = "monthly"
	PeriodAllTime RankingPeriod = "all_time"
)

// IsValid checks whether the period is one of the supported windows.
func (p RankingPeriod) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}

	return false
}

// BadgeWithStatus pairs a badge definition with the requesting user's award
// state.
type BadgeWithStatus struct {
	Badge    *entity.Badge
	Earned   bool
	EarnedAt *time.Time
}

// RankingEntry is one row of a computed ranking.
type RankingEntry struct {
	Position       int
	UserID         uuid.UUID
	Name           string
	ProfilePicture string
	Points         int
	IsCurrentUser  bool
}

// RankingOutput is a ranking page plus the requester's overall position,
// which is computed even when they fall outside the page.
type RankingOutput struct {
	Entries         []RankingEntry
	CurrentPosition int
	Period          RankingPeriod
}

// Challenge is a recurring walking goal with the user's live progress.
type Challenge struct {
	ID           int
	Title        string
	Description  string
	Type         string
	Target       int
	Progress     int
	RewardPoints int
	Completed    bool
}

// GamificationUsecase defines the interface for badges, rankings and
// challenges.
type GamificationUsecase interface {
	// ListBadges retrieves every badge definition flagged with whether the
	// requesting user has earned it.
	ListBadges(ctx context.Context, userID uuid.UUID) ([]BadgeWithStatus, error)

	// MyBadges retrieves the user's earned badges, newest first.
	MyBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error)

	// EvaluateBadges checks every badge rule against the user's walk record
	// and awards any badge newly satisfied. It is idempotent and returns only
	// the badges awarded by this call.
	EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error)

	// Ranking computes the points ranking over the given period.
	Ranking(ctx context.Context, userID uuid.UUID, period RankingPeriod, limit int) (*RankingOutput, error)

	// Leaderboard retrieves the top users by lifetime points.
	Leaderboard(ctx context.Context, userID uuid.UUID) ([]RankingEntry, error)

	// Challenges retrieves the daily, weekly and monthly goals with the user's
	// progress filled in.
	Challenges(ctx context.Context, userID uuid.UUID) ([]Challenge, error)
}
