// Package model holds the GORM persistence models mirroring the database tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	ProfilePicture string    `gorm:"type:varchar(255)"`
	TotalPoints    int       `gorm:"not null;default:0"`
	Role           string    `gorm:"type:varchar(10);not null;default:user"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`

	Pets       []PetModel       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Walks      []WalkModel      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UserBadges []UserBadgeModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
