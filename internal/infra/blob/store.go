// Package blob stores uploaded profile pictures in a gocloud.dev bucket.
package blob

import (
	"context"
	"io"
	"log/slog"

	"walkies/config"
	"walkies/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

// Params defines the dependencies for opening the upload bucket.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	LC     fx.Lifecycle
}

type bucketStore struct {
	bucket *blob.Bucket
}

// NewFileStore opens the configured bucket URL and registers its shutdown
// with the application lifecycle.
func NewFileStore(params Params) (service.FileStore, error) {
	if params.Config.Uploads == nil || params.Config.Uploads.BucketURL == "" {
		return nil, errors.New("uploads.bucketUrl is not configured")
	}

	bucket, err := blob.OpenBucket(context.Background(), params.Config.Uploads.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload bucket")
	}

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Upload bucket opened", slog.String("url", params.Config.Uploads.BucketURL))

	return &bucketStore{bucket: bucket}, nil
}

func (s *bucketStore) Save(ctx context.Context, key string, contentType string, r io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()

		return errors.Wrap(err, "failed to write upload")
	}

	return errors.Wrap(w.Close(), "failed to finish upload")
}

func (s *bucketStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrap(err, "failed to delete upload")
	}

	return nil
}
