package impl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeHasher prefixes passwords instead of hashing them.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

// fakeTokenService issues predictable tokens and remembers the last claims.
type fakeTokenService struct {
	claims *service.Claims
}

func (f *fakeTokenService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	f.claims = &service.Claims{UserID: userID, Role: role}

	return "token-" + userID.String(), nil
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	if f.claims == nil || tokenString != "token-"+f.claims.UserID.String() {
		return nil, errors.New("invalid token")
	}

	return f.claims, nil
}

func (f *fakeTokenService) TokenDuration() time.Duration { return time.Hour }

// fakeFileStore records saved keys in memory.
type fakeFileStore struct {
	saved []string
}

func (f *fakeFileStore) Save(_ context.Context, key, _ string, r io.Reader) error {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return err
	}
	f.saved = append(f.saved, key)

	return nil
}

func (f *fakeFileStore) Delete(context.Context, string) error { return nil }

func newUserServiceForTest(userRepo *mockUserRepository, walkRepo *mockWalkRepository, badgeRepo *mockBadgeRepository, tokens *fakeTokenService, files *fakeFileStore) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		WalkRepo:     walkRepo,
		BadgeRepo:    badgeRepo,
		Hasher:       fakeHasher{},
		TokenService: tokens,
		FileStore:    files,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})
}

func TestUserService_Register(t *testing.T) {
	userRepo := new(mockUserRepository)
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, &fakeFileStore{})

	ctx := context.Background()
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = uuid.New()
		}).
		Return(nil)

	out, err := service.Register(ctx, usecase.RegisterUserInput{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, "hashed:secret123", out.User.PasswordHash)
	assert.Equal(t, entity.RoleUser, out.User.Role)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepository)
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, &fakeFileStore{})

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "ana@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: "hashed:right"}, nil)

	_, err := service.Login(ctx, usecase.LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepository)
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, &fakeFileStore{})

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := service.Login(ctx, usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_VerifyToken_RoundTrip(t *testing.T) {
	userRepo := new(mockUserRepository)
	tokens := &fakeTokenService{}
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), tokens, &fakeFileStore{})

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ana@example.com", PasswordHash: "hashed:secret", Role: entity.RoleUser}
	userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	out, err := service.Login(ctx, usecase.LoginInput{Email: user.Email, Password: "secret"})
	require.NoError(t, err)

	resolved, err := service.VerifyToken(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestUserService_VerifyToken_Invalid(t *testing.T) {
	service := newUserServiceForTest(new(mockUserRepository), new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, &fakeFileStore{})

	_, err := service.VerifyToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestUserService_UploadProfilePicture(t *testing.T) {
	userRepo := new(mockUserRepository)
	files := &fakeFileStore{}
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, files)

	ctx := context.Background()
	userID := uuid.New()
	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, Email: "ana@example.com"}, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := service.UploadProfilePicture(ctx, userID, usecase.UploadPictureInput{
		Filename:    "me.PNG",
		ContentType: "image/png",
		Size:        128,
		Content:     strings.NewReader("not really a png"),
	})
	require.NoError(t, err)
	require.Len(t, files.saved, 1)
	assert.Equal(t, files.saved[0], user.ProfilePicture)
	assert.True(t, strings.HasPrefix(user.ProfilePicture, "users/"+userID.String()+"/"))
	assert.True(t, strings.HasSuffix(user.ProfilePicture, ".png"))
}

func TestUserService_UploadProfilePicture_RejectsExtension(t *testing.T) {
	userRepo := new(mockUserRepository)
	files := &fakeFileStore{}
	service := newUserServiceForTest(userRepo, new(mockWalkRepository), new(mockBadgeRepository), &fakeTokenService{}, files)

	_, err := service.UploadProfilePicture(context.Background(), uuid.New(), usecase.UploadPictureInput{
		Filename:    "malware.exe",
		ContentType: "application/octet-stream",
		Size:        128,
		Content:     strings.NewReader("nope"),
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPLOAD_INVALID_FILE", appErr.ErrorCode())
	assert.Empty(t, files.saved)
}

func TestUserService_GetDashboard(t *testing.T) {
	userRepo := new(mockUserRepository)
	walkRepo := new(mockWalkRepository)
	badgeRepo := new(mockBadgeRepository)
	service := newUserServiceForTest(userRepo, walkRepo, badgeRepo, &fakeTokenService{}, &fakeFileStore{})

	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, TotalPoints: 340}, nil)
	walkRepo.On("FindRecentByUser", ctx, userID, dashboardRecentWalks).
		Return([]*entity.Walk{{ID: uuid.New()}}, nil)
	walkRepo.On("StatsOnDay", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(&repository.DayStats{Walks: 2, Distance: 3500, Points: 45}, nil)
	badgeRepo.On("FindAwardsByUser", ctx, userID).
		Return([]*entity.UserBadge{
			{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()},
		}, nil)

	out, err := service.GetDashboard(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, out.RecentWalks, 1)
	assert.Equal(t, 2, out.TodayWalks)
	assert.InDelta(t, 3.5, out.TodayKm, 1e-9)
	assert.Equal(t, 45, out.TodayPoints)
	assert.Len(t, out.RecentBadges, dashboardRecentBadges)
	assert.Equal(t, 340, out.TotalPoints)
}
