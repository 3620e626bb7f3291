// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pet represents an animal profile owned by exactly one user.
// Weight is in kilograms and is optional; zero means unknown.
type Pet struct {
	ID             uuid.UUID // The unique identifier for the pet.
	Name           string    // The pet's display name.
	Breed          string    // Free-text breed description, optional.
	Age            int       // Age in years, zero when unknown.
	Weight         float64   // Weight in kilograms, zero when unknown.
	ProfilePicture string    // Storage key of the pet's picture, empty when unset.
	Preferences    string    // Free-text preferences (favorite routes, habits), optional.
	OwnerID        uuid.UUID // Links this pet to the User that owns it.
	CreatedAt      time.Time // Timestamp of when this pet profile was created.
	UpdatedAt      time.Time // Timestamp of the last modification.
}
