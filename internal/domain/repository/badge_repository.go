package repository

import (
	"context"
	"errors"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBadgeNotFound is a domain-specific error returned when a badge is not found.
var ErrBadgeNotFound = errors.New("badge not found")

// ErrDuplicateAward is returned when creating a user badge would violate the
// (user, badge) uniqueness constraint.
var ErrDuplicateAward = errors.New("badge already awarded to this user")

// BadgeRepository defines operations over badge definitions and user awards.
type BadgeRepository interface {
	// ListBadges retrieves every badge definition.
	ListBadges(ctx context.Context) ([]*entity.Badge, error)

	// FindBadgeByName retrieves a badge definition by its unique name.
	FindBadgeByName(ctx context.Context, name string) (*entity.Badge, error)

	// FindBadgesByCondition retrieves all badges of a given condition type.
	FindBadgesByCondition(ctx context.Context, condition entity.BadgeCondition) ([]*entity.Badge, error)

	// CreateBadge persists a new badge definition. Used only by seeding.
	CreateBadge(ctx context.Context, badge *entity.Badge) error

	// FindAwardsByUser retrieves a user's earned badges ordered by award time
	// descending, with the badge definition populated.
	FindAwardsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error)

	// HasAward reports whether the user already holds the given badge.
	HasAward(ctx context.Context, userID, badgeID uuid.UUID) (bool, error)

	// CreateAward records that a user earned a badge. Returns ErrDuplicateAward
	// when the (user, badge) pair already exists; the unique index on the pair
	// is the concurrency safeguard.
	CreateAward(ctx context.Context, award *entity.UserBadge) error
}
