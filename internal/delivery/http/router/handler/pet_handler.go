package handler

import (
	"log/slog"

	"walkies/internal/delivery/http/response"
	"walkies/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PetHandler holds dependencies for pet management handlers.
type PetHandler struct {
	uc     usecase.PetUsecase
	logger *slog.Logger
}

// NewPetHandler is the constructor for PetHandler, injected by Fx.
func NewPetHandler(uc usecase.PetUsecase, logger *slog.Logger) *PetHandler {
	return &PetHandler{uc: uc, logger: logger}
}

type createPetRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=100"`
	Breed          string  `json:"breed" validate:"max=100"`
	Age            int     `json:"age" validate:"gte=0,lte=50"`
	Weight         float64 `json:"weight" validate:"gte=0"`
	ProfilePicture string  `json:"profile_picture"`
	Preferences    string  `json:"preferences"`
}

// Create registers a new pet for the authenticated user.
func (h *PetHandler) Create(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	var req createPetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid pet input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet, err := h.uc.CreatePet(c.Request().Context(), ownerID, usecase.CreatePetInput{
		Name:           req.Name,
		Breed:          req.Breed,
		Age:            req.Age,
		Weight:         req.Weight,
		ProfilePicture: req.ProfilePicture,
		Preferences:    req.Preferences,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, toPetView(pet), "Pet registered successfully")
}

// List returns every pet owned by the authenticated user.
func (h *PetHandler) List(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	pets, err := h.uc.ListPets(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toPetViews(pets), "")
}

// Get returns a single pet owned by the authenticated user.
func (h *PetHandler) Get(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	petID, err := pathUUID(c, "petId")
	if err != nil {
		return err
	}

	pet, err := h.uc.GetPet(c.Request().Context(), ownerID, petID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toPetView(pet), "")
}

type updatePetRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Breed          *string  `json:"breed" validate:"omitempty,max=100"`
	Age            *int     `json:"age" validate:"omitempty,gte=0,lte=50"`
	Weight         *float64 `json:"weight" validate:"omitempty,gte=0"`
	ProfilePicture *string  `json:"profile_picture"`
	Preferences    *string  `json:"preferences"`
}

// Update applies partial changes to one of the authenticated user's pets.
func (h *PetHandler) Update(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	petID, err := pathUUID(c, "petId")
	if err != nil {
		return err
	}

	var req updatePetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid pet input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pet, err := h.uc.UpdatePet(c.Request().Context(), ownerID, petID, usecase.UpdatePetInput{
		Name:           req.Name,
		Breed:          req.Breed,
		Age:            req.Age,
		Weight:         req.Weight,
		ProfilePicture: req.ProfilePicture,
		Preferences:    req.Preferences,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toPetView(pet), "Pet updated successfully")
}

// Delete removes one of the authenticated user's pets.
func (h *PetHandler) Delete(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	petID, err := pathUUID(c, "petId")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePet(c.Request().Context(), ownerID, petID); err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, nil, "Pet deleted successfully")
}

// UploadPicture stores a multipart image for one of the user's pets.
func (h *PetHandler) UploadPicture(c echo.Context) error {
	ownerID, err := principalID(c)
	if err != nil {
		return err
	}

	petID, err := pathUUID(c, "petId")
	if err != nil {
		return err
	}

	input, closeFile, err := uploadFromForm(c)
	if err != nil {
		return err
	}
	defer closeFile()

	pet, err := h.uc.UploadPetPicture(c.Request().Context(), ownerID, petID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, toPetView(pet), "Pet picture uploaded successfully")
}
