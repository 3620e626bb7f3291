package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeModel mirrors the 'badges' table. Rows are seeded at startup and
// treated as immutable reference data afterwards.
type BadgeModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string    `gorm:"type:varchar(100);not null;unique"`
	Description    string    `gorm:"type:text;not null"`
	Icon           string    `gorm:"type:varchar(255)"`
	PointsRequired int       `gorm:"not null;default:0"`
	ConditionType  string    `gorm:"type:varchar(50);not null;index"`
	ConditionValue int
	CreatedAt      time.Time

	UserBadges []UserBadgeModel `gorm:"foreignKey:BadgeID"`
}

// TableName explicitly sets the table name for GORM.
func (BadgeModel) TableName() string {
	return "badges"
}

// UserBadgeModel mirrors the 'user_badges' table. The composite unique index
// on (user_id, badge_id) is the storage-level guard against double awards.
type UserBadgeModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_user_badge"`
	BadgeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_user_badge"`
	EarnedAt time.Time `gorm:"not null"`

	Badge *BadgeModel `gorm:"foreignKey:BadgeID"`
}

// TableName explicitly sets the table name for GORM.
func (UserBadgeModel) TableName() string {
	return "user_badges"
}
