package model

import (
	"time"

	"github.com/google/uuid"
)

// WalkModel mirrors the 'walks' table. RouteData stores the ordered GPS
// samples as a serialized JSON array. The partial unique index on UserID
// enforces at most one unfinished walk per user at the storage layer, so
// concurrent start requests cannot race past the application check.
type WalkModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StartTime    time.Time  `gorm:"not null"`
	EndTime      *time.Time `gorm:"index"`
	Duration     int
	Distance     float64
	Calories     int
	AveragePace  float64
	RouteData    string    `gorm:"type:text"`
	Feedback     string    `gorm:"type:text"`
	PointsEarned int       `gorm:"not null;default:0"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;index:idx_walks_one_active,unique,where:end_time IS NULL"`
	PetID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (WalkModel) TableName() string {
	return "walks"
}
