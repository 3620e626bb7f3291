package middleware

import (
	"strings"

	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/delivery/http/response"
	"walkies/internal/domain/entity"
	"walkies/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the bearer token into a principal exactly once per
// request. Handlers read the principal from the request context; business
// logic never sees raw tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the resolved principal
// on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		deliverycontext.SetPrincipal(c, claims)

		return next(c)
	}
}

// RequireAdmin rejects requests whose principal does not carry the admin
// role. It must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := deliverycontext.GetPrincipal(c)
		if !ok {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: principal missing")
		}

		if claims.Role != entity.RoleAdmin.String() {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: admin role required")
		}

		return next(c)
	}
}
