package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "walkies/internal/delivery/context"
	"walkies/internal/delivery/http/validator"
	"walkies/internal/domain/entity"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWalkUsecase struct {
	mock.Mock
}

func (m *mockWalkUsecase) StartWalk(ctx context.Context, userID uuid.UUID, input usecase.StartWalkInput) (*entity.Walk, error) {
	args := m.Called(ctx, userID, input)
	walk, _ := args.Get(0).(*entity.Walk)

	return walk, args.Error(1)
}

func (m *mockWalkUsecase) UpdateWalk(ctx context.Context, userID, walkID uuid.UUID, input usecase.UpdateWalkInput) (*entity.Walk, error) {
	args := m.Called(ctx, userID, walkID, input)
	walk, _ := args.Get(0).(*entity.Walk)

	return walk, args.Error(1)
}

func (m *mockWalkUsecase) FinishWalk(ctx context.Context, userID, walkID uuid.UUID, input usecase.FinishWalkInput) (*entity.Walk, []*entity.Badge, error) {
	args := m.Called(ctx, userID, walkID, input)
	walk, _ := args.Get(0).(*entity.Walk)
	badges, _ := args.Get(1).([]*entity.Badge)

	return walk, badges, args.Error(2)
}

func (m *mockWalkUsecase) ActiveWalk(ctx context.Context, userID uuid.UUID) (*entity.Walk, error) {
	args := m.Called(ctx, userID)
	walk, _ := args.Get(0).(*entity.Walk)

	return walk, args.Error(1)
}

func (m *mockWalkUsecase) WalkHistory(ctx context.Context, userID uuid.UUID, page int) (*usecase.WalkHistoryOutput, error) {
	args := m.Called(ctx, userID, page)
	out, _ := args.Get(0).(*usecase.WalkHistoryOutput)

	return out, args.Error(1)
}

func (m *mockWalkUsecase) WalkDetails(ctx context.Context, userID, walkID uuid.UUID) (*entity.Walk, error) {
	args := m.Called(ctx, userID, walkID)
	walk, _ := args.Get(0).(*entity.Walk)

	return walk, args.Error(1)
}

func newAuthedContext(t *testing.T, method, target, body string, userID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	deliverycontext.SetPrincipal(c, &service.Claims{UserID: userID, Role: entity.RoleUser.String()})

	return c, rec
}

func TestWalkHandler_Start(t *testing.T) {
	userID := uuid.New()
	petID := uuid.New()
	walkUC := new(mockWalkUsecase)
	walkUC.On("StartWalk", mock.Anything, userID, usecase.StartWalkInput{PetID: petID}).
		Return(&entity.Walk{ID: uuid.New(), UserID: userID, PetID: petID, StartTime: time.Now()}, nil)

	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	c, rec := newAuthedContext(t, http.MethodPost, "/walks/start", `{"pet_id":"`+petID.String()+`"}`, userID)
	require.NoError(t, h.Start(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), petID.String())
	walkUC.AssertExpectations(t)
}

func TestWalkHandler_Start_InvalidPetID(t *testing.T) {
	walkUC := new(mockWalkUsecase)
	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	c, _ := newAuthedContext(t, http.MethodPost, "/walks/start", `{"pet_id":"not-a-uuid"}`, uuid.New())

	err := h.Start(c)
	require.Error(t, err)
	walkUC.AssertNotCalled(t, "StartWalk", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalkHandler_Finish_ReportsNewBadges(t *testing.T) {
	userID := uuid.New()
	walkID := uuid.New()
	endTime := time.Now()
	walkUC := new(mockWalkUsecase)
	walkUC.On("FinishWalk", mock.Anything, userID, walkID, mock.Anything).
		Return(
			&entity.Walk{ID: walkID, UserID: userID, EndTime: &endTime, PointsEarned: 12},
			[]*entity.Badge{{ID: uuid.New(), Name: "First Walk"}},
			nil,
		)

	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	c, rec := newAuthedContext(t, http.MethodPost, "/walks/"+walkID.String()+"/finish",
		`{"route":[{"lat":1,"lng":2}],"feedback":"great walk"}`, userID)
	c.SetParamNames("walkId")
	c.SetParamValues(walkID.String())

	require.NoError(t, h.Finish(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First Walk")
	assert.Contains(t, rec.Body.String(), "new_badges")
	walkUC.AssertExpectations(t)
}

func TestWalkHandler_History_ParsesPageParam(t *testing.T) {
	userID := uuid.New()
	walkUC := new(mockWalkUsecase)
	walkUC.On("WalkHistory", mock.Anything, userID, 3).
		Return(&usecase.WalkHistoryOutput{Walks: nil, Total: 25, Page: 3, PageSize: 10, TotalPages: 3}, nil)

	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	c, rec := newAuthedContext(t, http.MethodGet, "/walks/history?page=3", "", userID)
	require.NoError(t, h.History(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_pages":3`)
	walkUC.AssertExpectations(t)
}

func TestWalkHandler_History_DefaultsPage(t *testing.T) {
	userID := uuid.New()
	walkUC := new(mockWalkUsecase)
	walkUC.On("WalkHistory", mock.Anything, userID, 1).
		Return(&usecase.WalkHistoryOutput{Page: 1, PageSize: 10}, nil)

	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	c, _ := newAuthedContext(t, http.MethodGet, "/walks/history?page=bogus", "", userID)
	require.NoError(t, h.History(c))
	walkUC.AssertExpectations(t)
}

func TestWalkHandler_Details_MissingPrincipal(t *testing.T) {
	walkUC := new(mockWalkUsecase)
	h := &WalkHandler{uc: walkUC, logger: slog.Default()}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/walks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Details(c)
	require.Error(t, err)
	walkUC.AssertNotCalled(t, "WalkDetails", mock.Anything, mock.Anything, mock.Anything)
}
