package repository

import (
	"context"
	"errors"
	"time"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrWalkNotFound is a domain-specific error returned when a walk is not found.
var ErrWalkNotFound = errors.New("walk not found")

// ErrActiveWalkExists is returned when inserting a walk would violate the
// one-active-walk-per-user constraint.
var ErrActiveWalkExists = errors.New("an active walk already exists for this user")

// RankRow is a read projection used by the ranking queries: one user with
// their summed points over a period.
type RankRow struct {
	UserID         uuid.UUID
	Name           string
	ProfilePicture string
	Points         int
}

// DayStats is a read projection of a user's walks on a single calendar day.
type DayStats struct {
	Walks    int
	Distance float64
	Points   int
}

// WalkRepository defines the standard operations for walk persistence and
// the aggregate queries the gamification layer needs.
type WalkRepository interface {
	// FindByID retrieves a single walk by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Walk, error)

	// FindByIDAndUser retrieves a walk only when it belongs to the given user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Walk, error)

	// FindActiveByUser retrieves the user's unfinished walk, if any.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Walk, error)

	// FindFinishedByUser retrieves finalized walks ordered by creation time
	// descending, paginated. It also returns the total number of finalized walks.
	FindFinishedByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*entity.Walk, int64, error)

	// FindRecentByUser retrieves the user's most recent walks regardless of state.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Walk, error)

	// FindStuck retrieves unfinished walks started before the given cutoff.
	FindStuck(ctx context.Context, cutoff time.Time) ([]*entity.Walk, error)

	// Create persists a new walk entity to the storage.
	Create(ctx context.Context, walk *entity.Walk) error

	// Update modifies an existing walk entity in the storage.
	Update(ctx context.Context, walk *entity.Walk) error

	// Delete removes a walk.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of finalized walks for a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// HasWalkOnDay reports whether the user has any walk created on the given
	// calendar day.
	HasWalkOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)

	// SumDistanceByUser returns the user's lifetime summed walk distance in meters.
	SumDistanceByUser(ctx context.Context, userID uuid.UUID) (float64, error)

	// SumDistanceSince returns the user's summed walk distance in meters for
	// walks created at or after the given time.
	SumDistanceSince(ctx context.Context, userID uuid.UUID, since time.Time) (float64, error)

	// SumPointsSince returns the user's summed points earned for walks created
	// at or after the given time. A nil since means all time.
	SumPointsSince(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error)

	// StatsOnDay aggregates the user's walk count, distance and points for a
	// single calendar day.
	StatsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (*DayStats, error)

	// RankUsersByPoints returns users ordered by summed points earned over
	// walks created at or after since (nil means all time), descending.
	RankUsersByPoints(ctx context.Context, since *time.Time, limit int) ([]*RankRow, error)

	// CountUsersWithMorePoints returns how many users earned strictly more
	// points than the given amount over the period. Used to place a requester
	// that falls outside the returned page.
	CountUsersWithMorePoints(ctx context.Context, points int, since *time.Time) (int64, error)
}
