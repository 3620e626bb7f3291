package model

import (
	"time"

	"github.com/google/uuid"
)

// PetModel mirrors the 'pets' table. OwnerID references users.id (UUID).
type PetModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Breed          string    `gorm:"type:varchar(100)"`
	Age            int
	Weight         float64
	ProfilePicture string    `gorm:"type:varchar(255)"`
	Preferences    string    `gorm:"type:text"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Walks []WalkModel `gorm:"foreignKey:PetID"`
}

// TableName explicitly sets the table name for GORM.
func (PetModel) TableName() string {
	return "pets"
}
