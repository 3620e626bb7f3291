// Package handler contains the HTTP handlers for the application.
package handler

import (
	deliverycontext "walkies/internal/delivery/context"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// principalID returns the authenticated user's ID. Routes behind the auth
// middleware always have one; its absence means a wiring mistake, reported
// as 401 rather than a panic.
func principalID(c echo.Context) (uuid.UUID, error) {
	claims, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return claims.UserID, nil
}

// pathUUID parses a path parameter as a UUID.
func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("identifier must be a valid UUID")
	}

	return id, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a valid UUID")
	}

	return id, nil
}

// uploadFromForm extracts the "file" part of a multipart upload. The caller
// must invoke the returned closer after the usecase has consumed the reader.
func uploadFromForm(c echo.Context) (usecase.UploadPictureInput, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return usecase.UploadPictureInput{}, nil, domainerrors.ErrValidationFailed.WithDetails("multipart field \"file\" is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return usecase.UploadPictureInput{}, nil, domainerrors.ErrUploadInvalidFile.WithDetails("failed to open uploaded file")
	}

	input := usecase.UploadPictureInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}

	return input, func() { file.Close() }, nil
}
