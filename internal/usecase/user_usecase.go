// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput defines the mutable profile fields. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name           *string
	Email          *string
	ProfilePicture *string
}

// UploadPictureInput carries an uploaded image and its metadata.
type UploadPictureInput struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// --- Output DTOs ---

// AuthOutput returns the signed token and the authenticated user.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// DashboardOutput aggregates the data shown on the user's home screen.
type DashboardOutput struct {
	RecentWalks  []*entity.Walk
	TodayWalks   int
	TodayKm      float64
	TodayPoints  int
	RecentBadges []*entity.UserBadge
	TotalPoints  int
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new user account and returns a signed token for it.
	Register(ctx context.Context, input RegisterUserInput) (*AuthOutput, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// VerifyToken resolves a raw token back to its user.
	VerifyToken(ctx context.Context, token string) (*entity.User, error)

	// RequestPasswordReset acknowledges a reset request. Mail delivery is not
	// wired yet, so the same response is returned whether or not the email
	// exists.
	RequestPasswordReset(ctx context.Context, email string) error

	// GetProfile retrieves the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the provided profile changes.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	// UploadProfilePicture stores the image and records its key on the profile.
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, input UploadPictureInput) (*entity.User, error)

	// GetDashboard aggregates recent walks, today's stats and recent badges.
	GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardOutput, error)
}
