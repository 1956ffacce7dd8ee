package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("storage bucket not configured")

// Uploader writes uploaded files to a public GCS bucket and returns the
// object URL stored on products and courier profiles.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error)
}

type gcsUploader struct {
	client *gcs.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (Uploader, error) {
	if bucket == "" {
		return nil, ErrNotConfigured
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &gcsUploader{client: client, bucket: bucket}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (string, error) {
	ext := path.Ext(filename)
	object := path.Join(folder, uuid.NewString()+ext)
	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, object), nil
}
