package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"walkies/config"
	"walkies/internal/domain/entity"
	"walkies/internal/domain/repository"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Walks: &config.WalksConfig{
			DefaultWeightKg: 70,
			StuckAfter:      4 * time.Hour,
			HistoryPageSize: 10,
		},
		Uploads: &config.UploadsConfig{
			BucketURL:    "mem://",
			MaxSizeBytes: 1 << 20,
		},
	}
}

// fakeTxManager runs the callback directly against a factory of the given
// mocks, standing in for a real transaction.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type fakeRepoFactory struct {
	userRepo  repository.UserRepository
	petRepo   repository.PetRepository
	walkRepo  repository.WalkRepository
	badgeRepo repository.BadgeRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository   { return f.userRepo }
func (f *fakeRepoFactory) PetRepo() repository.PetRepository     { return f.petRepo }
func (f *fakeRepoFactory) WalkRepo() repository.WalkRepository   { return f.walkRepo }
func (f *fakeRepoFactory) BadgeRepo() repository.BadgeRepository { return f.badgeRepo }

// noopRankingCache always misses.
type noopRankingCache struct{}

func (noopRankingCache) Get(context.Context, string) ([]repository.RankRow, bool) { return nil, false }
func (noopRankingCache) Set(context.Context, string, []repository.RankRow)        {}

// mockUserRepository is a testify mock of repository.UserRepository.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) TopByPoints(ctx context.Context, limit int) ([]*entity.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) AddPoints(ctx context.Context, id uuid.UUID, points int) error {
	return m.Called(ctx, id, points).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// mockPetRepository is a testify mock of repository.PetRepository.
type mockPetRepository struct {
	mock.Mock
}

func (m *mockPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Pet), args.Error(1)
}

func (m *mockPetRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Pet, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Pet), args.Error(1)
}

func (m *mockPetRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Pet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Pet), args.Error(1)
}

func (m *mockPetRepository) List(ctx context.Context) ([]*entity.Pet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Pet), args.Error(1)
}

func (m *mockPetRepository) Create(ctx context.Context, pet *entity.Pet) error {
	return m.Called(ctx, pet).Error(0)
}

func (m *mockPetRepository) Update(ctx context.Context, pet *entity.Pet) error {
	return m.Called(ctx, pet).Error(0)
}

func (m *mockPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// mockWalkRepository is a testify mock of repository.WalkRepository.
type mockWalkRepository struct {
	mock.Mock
}

func (m *mockWalkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Walk, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Walk), args.Error(1)
}

func (m *mockWalkRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Walk, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Walk), args.Error(1)
}

func (m *mockWalkRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Walk, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Walk), args.Error(1)
}

func (m *mockWalkRepository) FindFinishedByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*entity.Walk, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Walk), args.Get(1).(int64), args.Error(2)
}

func (m *mockWalkRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Walk, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Walk), args.Error(1)
}

func (m *mockWalkRepository) FindStuck(ctx context.Context, cutoff time.Time) ([]*entity.Walk, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Walk), args.Error(1)
}

func (m *mockWalkRepository) Create(ctx context.Context, walk *entity.Walk) error {
	return m.Called(ctx, walk).Error(0)
}

func (m *mockWalkRepository) Update(ctx context.Context, walk *entity.Walk) error {
	return m.Called(ctx, walk).Error(0)
}

func (m *mockWalkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockWalkRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockWalkRepository) HasWalkOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	args := m.Called(ctx, userID, day)

	return args.Bool(0), args.Error(1)
}

func (m *mockWalkRepository) SumDistanceByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockWalkRepository) SumDistanceSince(ctx context.Context, userID uuid.UUID, since time.Time) (float64, error) {
	args := m.Called(ctx, userID, since)

	return args.Get(0).(float64), args.Error(1)
}

func (m *mockWalkRepository) SumPointsSince(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error) {
	args := m.Called(ctx, userID, since)

	return args.Int(0), args.Error(1)
}

func (m *mockWalkRepository) StatsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (*repository.DayStats, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.DayStats), args.Error(1)
}

func (m *mockWalkRepository) RankUsersByPoints(ctx context.Context, since *time.Time, limit int) ([]*repository.RankRow, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.RankRow), args.Error(1)
}

func (m *mockWalkRepository) CountUsersWithMorePoints(ctx context.Context, points int, since *time.Time) (int64, error) {
	args := m.Called(ctx, points, since)

	return args.Get(0).(int64), args.Error(1)
}

// mockBadgeRepository is a testify mock of repository.BadgeRepository.
type mockBadgeRepository struct {
	mock.Mock
}

func (m *mockBadgeRepository) ListBadges(ctx context.Context) ([]*entity.Badge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Badge), args.Error(1)
}

func (m *mockBadgeRepository) FindBadgeByName(ctx context.Context, name string) (*entity.Badge, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Badge), args.Error(1)
}

func (m *mockBadgeRepository) FindBadgesByCondition(ctx context.Context, condition entity.BadgeCondition) ([]*entity.Badge, error) {
	args := m.Called(ctx, condition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Badge), args.Error(1)
}

func (m *mockBadgeRepository) CreateBadge(ctx context.Context, badge *entity.Badge) error {
	return m.Called(ctx, badge).Error(0)
}

func (m *mockBadgeRepository) FindAwardsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserBadge), args.Error(1)
}

func (m *mockBadgeRepository) HasAward(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, badgeID)

	return args.Bool(0), args.Error(1)
}

func (m *mockBadgeRepository) CreateAward(ctx context.Context, award *entity.UserBadge) error {
	return m.Called(ctx, award).Error(0)
}

// mockGamificationUsecase stubs badge evaluation for the walk service tests.
type mockGamificationUsecase struct {
	mock.Mock
}

func (m *mockGamificationUsecase) ListBadges(ctx context.Context, userID uuid.UUID) ([]usecase.BadgeWithStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]usecase.BadgeWithStatus), args.Error(1)
}

func (m *mockGamificationUsecase) MyBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserBadge), args.Error(1)
}

func (m *mockGamificationUsecase) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Badge), args.Error(1)
}

func (m *mockGamificationUsecase) Ranking(ctx context.Context, userID uuid.UUID, period usecase.RankingPeriod, limit int) (*usecase.RankingOutput, error) {
	args := m.Called(ctx, userID, period, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RankingOutput), args.Error(1)
}

func (m *mockGamificationUsecase) Leaderboard(ctx context.Context, userID uuid.UUID) ([]usecase.RankingEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]usecase.RankingEntry), args.Error(1)
}

func (m *mockGamificationUsecase) Challenges(ctx context.Context, userID uuid.UUID) ([]usecase.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]usecase.Challenge), args.Error(1)
}
