// Package media stores the couple vault: item metadata in PostgreSQL and
// bytes in a BlobStore.
package media

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

const MaxUploadBytes = 25 << 20

var (
	ErrStorageUnavailable = errors.New("media storage is not configured")
	ErrEmptyUpload        = errors.New("upload is empty")
	ErrTooLarge           = errors.New("upload exceeds the size limit")
	ErrUnsupportedType    = errors.New("unsupported media type")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"video/mp4":  ".mp4",
	"video/webm": ".webm",
}

type Item struct {
	ID          uuid.UUID `json:"id"`
	CoupleID    uuid.UUID `json:"couple_id"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlobStore holds vault bytes. Put returns the number of bytes written.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey places every object under its couple's prefix.
func ObjectKey(coupleID, itemID uuid.UUID, contentType string) string {
	return "couples/" + coupleID.String() + "/" + itemID.String() + allowedTypes[contentType]
}
