// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCondition enumerates the rule types a badge can be awarded under.
type BadgeCondition string

const (
	// ConditionFirstWalk awards on the user's first finalized walk.
	ConditionFirstWalk BadgeCondition = "first_walk"
	// ConditionDailyStreak awards after walking on N consecutive calendar days.
	ConditionDailyStreak BadgeCondition = "daily_streak"
	// ConditionTotalDistance awards once lifetime walk distance reaches N kilometers.
	ConditionTotalDistance BadgeCondition = "total_distance"
	// ConditionTotalPoints awards once the user's running point total reaches N.
	ConditionTotalPoints BadgeCondition = "total_points"
)

// String returns the string representation of the BadgeCondition.
func (c BadgeCondition) String() string {
	return string(c)
}

// IsValid checks if the BadgeCondition is a known rule type.
func (c BadgeCondition) IsValid() bool {
	switch c {
	case ConditionFirstWalk, ConditionDailyStreak, ConditionTotalDistance, ConditionTotalPoints:
		return true
	default:
		return false
	}
}

// Badge is an achievement definition. Badges are static reference data:
// seeded once at startup and effectively immutable afterwards.
type Badge struct {
	ID             uuid.UUID      // The unique identifier for the badge.
	Name           string         // Unique display name.
	Description    string         // Human-readable description of how to earn it.
	Icon           string         // Storage key of the badge icon, optional.
	PointsRequired int            // Informational point requirement shown to users.
	ConditionType  BadgeCondition // The rule type this badge is evaluated under.
	ConditionValue int            // Rule threshold; unit depends on ConditionType (days, km, points).
	CreatedAt      time.Time      // Timestamp of when this badge was seeded.
}

// UserBadge records that a user earned a specific badge. At most one record
// may exist per (user, badge) pair; the storage layer enforces this with a
// unique index so concurrent award attempts cannot double-award.
type UserBadge struct {
	ID       uuid.UUID // The unique identifier for the award record.
	UserID   uuid.UUID // The user who earned the badge.
	BadgeID  uuid.UUID // The badge that was earned.
	EarnedAt time.Time // When the badge was awarded.
	Badge    *Badge    // The badge definition, populated on reads for display.
}
