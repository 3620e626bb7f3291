package handler

import (
	"log/slog"

	"walkies/internal/delivery/http/response"
	"walkies/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the administration console
// handlers. All routes it serves sit behind the admin role guard.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

// ListUsers returns every registered user.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserViews(users), "")
}

type adminUpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role"`
}

// UpdateUser applies partial changes to any user's account, including
// role promotions.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), userID, usecase.AdminUpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toUserView(user), "User updated successfully")
}

// DeleteUser removes a user account and everything it owns.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "User deleted successfully")
}

// ListPets returns every registered pet across all owners.
func (h *AdminHandler) ListPets(c echo.Context) error {
	pets, err := h.uc.ListPets(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toPetViews(pets), "")
}

// DeletePet removes any pet regardless of owner.
func (h *AdminHandler) DeletePet(c echo.Context) error {
	petID, err := pathUUID(c, "petId")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePet(c.Request().Context(), petID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Pet deleted successfully")
}

// ListStuckWalks returns walks that were started but never finished
// within the configured grace window.
func (h *AdminHandler) ListStuckWalks(c echo.Context) error {
	walks, err := h.uc.ListStuckWalks(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toWalkViews(walks), "")
}

// ForceCompleteWalk closes a stuck walk without computing metrics.
func (h *AdminHandler) ForceCompleteWalk(c echo.Context) error {
	walkID, err := pathUUID(c, "walkId")
	if err != nil {
		return err
	}

	walk, err := h.uc.ForceCompleteWalk(c.Request().Context(), walkID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toWalkView(walk), "Walk force-completed successfully")
}

// DeleteWalk removes any walk record.
func (h *AdminHandler) DeleteWalk(c echo.Context) error {
	walkID, err := pathUUID(c, "walkId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteWalk(c.Request().Context(), walkID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Walk deleted successfully")
}
