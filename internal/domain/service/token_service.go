package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims carries the identity resolved from a verified access token. The
// delivery layer resolves it once per request and threads it explicitly into
// handlers; business logic never inspects raw tokens.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for a given user and role.
	GenerateToken(userID uuid.UUID, role string) (string, error)

	// ValidateToken checks the validity of a token string and returns the
	// resolved claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenDuration returns the configured access token lifetime.
	TokenDuration() time.Duration
}
