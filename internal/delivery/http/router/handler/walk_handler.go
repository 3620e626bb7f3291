package handler

import (
	"log/slog"
	"strconv"

	"walkies/internal/delivery/http/response"
	"walkies/internal/domain/entity"
	"walkies/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WalkHandler holds dependencies for walk session handlers.
type WalkHandler struct {
	uc     usecase.WalkUsecase
	logger *slog.Logger
}

// NewWalkHandler is the constructor for WalkHandler, injected by Fx.
func NewWalkHandler(uc usecase.WalkUsecase, logger *slog.Logger) *WalkHandler {
	return &WalkHandler{uc: uc, logger: logger}
}

type startWalkRequest struct {
	PetID string `json:"pet_id" validate:"required,uuid"`
}

// Start opens a new walk session for one of the user's pets.
func (h *WalkHandler) Start(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	var req startWalkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid walk input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	petID, err := parseUUID(req.PetID)
	if err != nil {
		return err
	}

	walk, err := h.uc.StartWalk(c.Request().Context(), userID, usecase.StartWalkInput{PetID: petID})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toWalkView(walk), "Walk started successfully")
}

type updateWalkRequest struct {
	Route []entity.RoutePoint `json:"route" validate:"required,min=1,dive"`
}

// Update appends route points to an in-progress walk.
func (h *WalkHandler) Update(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	walkID, err := pathUUID(c, "walkId")
	if err != nil {
		return err
	}

	var req updateWalkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid route input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	walk, err := h.uc.UpdateWalk(c.Request().Context(), userID, walkID, usecase.UpdateWalkInput{Route: req.Route})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toWalkView(walk), "Walk updated successfully")
}

type finishWalkRequest struct {
	Route    []entity.RoutePoint `json:"route" validate:"omitempty,dive"`
	Feedback string              `json:"feedback" validate:"max=2000"`
}

type finishWalkView struct {
	Walk      *walkView    `json:"walk"`
	NewBadges []*badgeView `json:"new_badges"`
}

// Finish closes an in-progress walk, computes its metrics and reports
// any badges the walk just unlocked.
func (h *WalkHandler) Finish(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	walkID, err := pathUUID(c, "walkId")
	if err != nil {
		return err
	}

	var req finishWalkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid walk input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	walk, newBadges, err := h.uc.FinishWalk(c.Request().Context(), userID, walkID, usecase.FinishWalkInput{
		Route:    req.Route,
		Feedback: req.Feedback,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, finishWalkView{
		Walk:      toWalkView(walk),
		NewBadges: toBadgeViews(newBadges),
	}, "Walk completed successfully")
}

// Active returns the user's current in-progress walk, if any.
func (h *WalkHandler) Active(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	walk, err := h.uc.ActiveWalk(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toWalkView(walk), "")
}

type walkHistoryView struct {
	Walks      []*walkView `json:"walks"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// History returns the user's finished walks, newest first, paginated
// through the "page" query parameter.
func (h *WalkHandler) History(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			page = parsed
		}
	}

	history, err := h.uc.WalkHistory(c.Request().Context(), userID, page)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, walkHistoryView{
		Walks:      toWalkViews(history.Walks),
		Total:      history.Total,
		Page:       history.Page,
		PageSize:   history.PageSize,
		TotalPages: history.TotalPages,
	}, "")
}

// Details returns a single walk owned by the authenticated user.
func (h *WalkHandler) Details(c echo.Context) error {
	userID, err := principalID(c)
	if err != nil {
		return err
	}

	walkID, err := pathUUID(c, "walkId")
	if err != nil {
		return err
	}

	walk, err := h.uc.WalkDetails(c.Request().Context(), userID, walkID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toWalkView(walk), "")
}
