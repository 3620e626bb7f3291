package handler

import (
	"log/slog"
	"strconv"

	"walkies/internal/delivery/http/response"
	"walkies/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultRankingLimit = 50

// GamificationHandler holds dependencies for badge, ranking and
// challenge handlers.
type GamificationHandler struct {
	uc     usecase.GamificationUsecase
	logger *slog.Logger
}

// NewGamificationHandler is the constructor for GamificationHandler,
// injected by Fx.
func NewGamificationHandler(uc usecase.GamificationUsecase, logger *slog.Logger) *GamificationHandler {
	return &GamificationHandler{uc: uc, logger: logger}
}

// Badges returns the full badge catalogue annotated with the user's
// earned state.
func (h *GamificationHandler) Badges(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	badges, err := h.uc.ListBadges(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toBadgeStatusViews(badges), "")
}

// MyBadges returns only the badges the user has earned, with award times.
func (h *GamificationHandler) MyBadges(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	awards, err := h.uc.MyBadges(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserBadgeViews(awards), "")
}

type rankingView struct {
	Period          string             `json:"period"`
	Entries         []rankingEntryView `json:"ranking"`
	CurrentPosition int                `json:"current_user_position"`
}

// Ranking returns the points ranking for the requested period. The
// "type" query parameter selects weekly, monthly or all_time and
// "limit" caps the page size.
func (h *GamificationHandler) Ranking(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	period := usecase.RankingPeriod(c.QueryParam("type"))
	if !period.IsValid() {
		period = usecase.PeriodAllTime
	}

	limit := defaultRankingLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ranking, err := h.uc.Ranking(c.Request().Context(), userID, period, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, rankingView{
		Period:          string(ranking.Period),
		Entries:         toRankingEntryViews(ranking.Entries),
		CurrentPosition: ranking.CurrentPosition,
	}, "")
}

// Leaderboard returns the top users by lifetime points.
func (h *GamificationHandler) Leaderboard(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	entries, err := h.uc.Leaderboard(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toRankingEntryViews(entries), "")
}

// Challenges returns the user's progress against the active challenges.
func (h *GamificationHandler) Challenges(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	challenges, err := h.uc.Challenges(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toChallengeViews(challenges), "")
}
