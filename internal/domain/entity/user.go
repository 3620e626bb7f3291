// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// TotalPoints is a running counter incremented whenever one of the user's
// walks is finalized with derived metrics.
type User struct {
	ID             uuid.UUID // The unique identifier for the user.
	Email          string    // The user's primary contact email, used as the login identifier.
	Name           string    // The user's display name.
	PasswordHash   string    // Stores the bcrypt-hashed password.
	ProfilePicture string    // Storage key of the profile picture, empty when unset.
	TotalPoints    int       // Lifetime points earned across all finalized walks.
	Role           Role      // Either RoleUser or RoleAdmin.
	CreatedAt      time.Time // Timestamp of when this account was created.
	UpdatedAt      time.Time // Timestamp of the last modification to this user's data.
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
