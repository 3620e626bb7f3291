package impl

import (
	"context"
	"path"
	"strings"

	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/service"
	"walkies/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// allowedImageExtensions lists the file extensions accepted for picture
// uploads.
var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// storePicture validates an uploaded image and writes it under the given key
// prefix, returning the storage key.
func storePicture(ctx context.Context, store service.FileStore, maxLen int64, prefix string, input usecase.UploadPictureInput) (string, error) {
	ext := strings.ToLower(path.Ext(input.Filename))
	if !allowedImageExtensions[ext] {
		return "", domainerrors.ErrUploadInvalidFile.WithDetails("allowed extensions: png, jpg, jpeg, gif")
	}
	if maxLen > 0 && input.Size > maxLen {
		return "", domainerrors.ErrUploadInvalidFile.WithDetails("file exceeds the upload size limit")
	}

	key := prefix + "/" + uuid.New().String() + ext
	if err := store.Save(ctx, key, input.ContentType, input.Content); err != nil {
		return "", errors.Wrap(err, "failed to store uploaded picture")
	}

	return key, nil
}
