package handler

import (
	"log/slog"
	"net/http"

	"walkies/internal/delivery/http/response"
	"walkies/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for auth and profile handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, authView{Token: output.Token, User: toUserView(output.User)}, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, authView{Token: output.Token, User: toUserView(output.User)}, "Login successful")
}

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyToken resolves a raw token back to its user.
func (h *UserHandler) VerifyToken(c echo.Context) error {
	var req verifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserView(user), "Token is valid")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword acknowledges a password reset request. The response is the
// same whether or not the email is registered.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "If the email is registered, reset instructions will be sent")
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserView(user), "")
}

type updateProfileRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	ProfilePicture *string `json:"profile_picture"`
}

// UpdateProfile applies partial changes to the authenticated user's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserView(user), "Profile updated successfully")
}

// UploadProfilePicture stores a multipart image under the "file" form field.
func (h *UserHandler) UploadProfilePicture(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	input, closeFile, err := uploadFromForm(c)
	if err != nil {
		return err
	}
	defer closeFile()

	user, err := h.uc.UploadProfilePicture(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserView(user), "Profile picture uploaded successfully")
}

type dashboardView struct {
	RecentWalks  []*walkView      `json:"recent_walks"`
	TodayStats   dashboardStats   `json:"today_stats"`
	RecentBadges []*userBadgeView `json:"recent_badges"`
	TotalPoints  int              `json:"total_points"`
}

type dashboardStats struct {
	WalksCount int     `json:"walks_count"`
	Distance   float64 `json:"distance"`
	Points     int     `json:"points"`
}

// Dashboard aggregates the data shown on the user's home screen.
func (h *UserHandler) Dashboard(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	out, err := h.uc.GetDashboard(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dashboardView{
		RecentWalks: toWalkViews(out.RecentWalks),
		TodayStats: dashboardStats{
			WalksCount: out.TodayWalks,
			Distance:   out.TodayKm,
			Points:     out.TodayPoints,
		},
		RecentBadges: toUserBadgeViews(out.RecentBadges),
		TotalPoints:  out.TotalPoints,
	}, "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
