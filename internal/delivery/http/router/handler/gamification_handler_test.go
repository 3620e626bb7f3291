package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"walkies/internal/domain/entity"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGamificationUsecase struct {
	mock.Mock
}

func (m *mockGamificationUsecase) ListBadges(ctx context.Context, userID uuid.UUID) ([]usecase.BadgeWithStatus, error) {
	args := m.Called(ctx, userID)
	badges, _ := args.Get(0).([]usecase.BadgeWithStatus)

	return badges, args.Error(1)
}

func (m *mockGamificationUsecase) MyBadges(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	args := m.Called(ctx, userID)
	awards, _ := args.Get(0).([]*entity.UserBadge)

	return awards, args.Error(1)
}

func (m *mockGamificationUsecase) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*entity.Badge, error) {
	args := m.Called(ctx, userID)
	badges, _ := args.Get(0).([]*entity.Badge)

	return badges, args.Error(1)
}

func (m *mockGamificationUsecase) Ranking(ctx context.Context, userID uuid.UUID, period usecase.RankingPeriod, limit int) (*usecase.RankingOutput, error) {
	args := m.Called(ctx, userID, period, limit)
	out, _ := args.Get(0).(*usecase.RankingOutput)

	return out, args.Error(1)
}

func (m *mockGamificationUsecase) Leaderboard(ctx context.Context, userID uuid.UUID) ([]usecase.RankingEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]usecase.RankingEntry)

	return entries, args.Error(1)
}

func (m *mockGamificationUsecase) Challenges(ctx context.Context, userID uuid.UUID) ([]usecase.Challenge, error) {
	args := m.Called(ctx, userID)
	challenges, _ := args.Get(0).([]usecase.Challenge)

	return challenges, args.Error(1)
}

func TestGamificationHandler_Ranking_SelectsPeriod(t *testing.T) {
	userID := uuid.New()
	uc := new(mockGamificationUsecase)
	uc.On("Ranking", mock.Anything, userID, usecase.PeriodWeekly, 10).
		Return(&usecase.RankingOutput{Period: usecase.PeriodWeekly, CurrentPosition: 1}, nil)

	h := &GamificationHandler{uc: uc, logger: slog.Default()}

	c, rec := newAuthedContext(t, http.MethodGet, "/gamification/ranking?type=weekly&limit=10", "", userID)
	require.NoError(t, h.Ranking(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"period":"weekly"`)
	uc.AssertExpectations(t)
}

func TestGamificationHandler_Ranking_DefaultsUnknownPeriod(t *testing.T) {
	userID := uuid.New()
	uc := new(mockGamificationUsecase)
	uc.On("Ranking", mock.Anything, userID, usecase.PeriodAllTime, defaultRankingLimit).
		Return(&usecase.RankingOutput{Period: usecase.PeriodAllTime}, nil)

	h := &GamificationHandler{uc: uc, logger: slog.Default()}

	c, _ := newAuthedContext(t, http.MethodGet, "/gamification/ranking?type=hourly", "", userID)
	require.NoError(t, h.Ranking(c))
	uc.AssertExpectations(t)
}

func TestGamificationHandler_Leaderboard(t *testing.T) {
	userID := uuid.New()
	uc := new(mockGamificationUsecase)
	uc.On("Leaderboard", mock.Anything, userID).
		Return([]usecase.RankingEntry{{Position: 1, UserID: uuid.New(), Name: "Top Walker", Points: 9000}}, nil)

	h := &GamificationHandler{uc: uc, logger: slog.Default()}

	c, rec := newAuthedContext(t, http.MethodGet, "/gamification/leaderboard", "", userID)
	require.NoError(t, h.Leaderboard(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Top Walker")
	uc.AssertExpectations(t)
}
