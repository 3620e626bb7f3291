package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"walkies/config"
	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	dashboardRecentWalks  = 5
	dashboardRecentBadges = 3
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	walkRepo     repository.WalkRepository
	badgeRepo    repository.BadgeRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	fileStore    service.FileStore
	maxUploadLen int64
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	WalkRepo     repository.WalkRepository
	BadgeRepo    repository.BadgeRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	FileStore    service.FileStore
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var maxUploadLen int64
	if params.Config != nil && params.Config.Uploads != nil {
		maxUploadLen = params.Config.Uploads.MaxSizeBytes
	}

	return &userService{
		userRepo:     params.UserRepo,
		walkRepo:     params.WalkRepo,
		badgeRepo:    params.BadgeRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		fileStore:    params.FileStore,
		maxUploadLen: maxUploadLen,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new user account and logs them in.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Registering user", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token after registration")
	}

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// Login verifies credentials and issues an access token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token for login")
	}

	srv.log(ctx).Info("User logged in", slog.String("user_id", user.ID.String()))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// VerifyToken resolves a raw token back to its user.
func (srv *userService) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrTokenInvalid.WrapMessage("token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to look up token subject")
	}

	return user, nil
}

// RequestPasswordReset acknowledges a reset request without revealing whether
// the email exists. Mail delivery is not wired yet.
func (srv *userService) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := srv.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to look up user for password reset")
	}

	srv.log(ctx).Info("Password reset requested", slog.String("email", email))

	return nil
}

// GetProfile retrieves the user's profile.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile applies the provided profile changes.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UploadProfilePicture stores the image in the blob bucket and records its
// key on the profile.
func (srv *userService) UploadProfilePicture(ctx context.Context, userID uuid.UUID, input usecase.UploadPictureInput) (*entity.User, error) {
	key, err := storePicture(ctx, srv.fileStore, srv.maxUploadLen, "users/"+userID.String(), input)
	if err != nil {
		return nil, err
	}

	return srv.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{ProfilePicture: &key})
}

// GetDashboard aggregates recent walks, today's stats and recent badges.
func (srv *userService) GetDashboard(ctx context.Context, userID uuid.UUID) (*usecase.DashboardOutput, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recentWalks, err := srv.walkRepo.FindRecentByUser(ctx, userID, dashboardRecentWalks)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent walks")
	}

	todayStats, err := srv.walkRepo.StatsOnDay(ctx, userID, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load today's stats")
	}

	awards, err := srv.badgeRepo.FindAwardsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent badges")
	}
	if len(awards) > dashboardRecentBadges {
		awards = awards[:dashboardRecentBadges]
	}

	return &usecase.DashboardOutput{
		RecentWalks:  recentWalks,
		TodayWalks:   todayStats.Walks,
		TodayKm:      todayStats.Distance / 1000,
		TodayPoints:  todayStats.Points,
		RecentBadges: awards,
		TotalPoints:  user.TotalPoints,
	}, nil
}
