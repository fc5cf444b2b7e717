package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=media
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	ListItems(ctx context.Context, coupleID uuid.UUID, limit int) ([]*Item, error)
}

type Service struct {
	repo  Repository
	blobs BlobStore
	now   func() time.Time
}

// NewService accepts a nil BlobStore; uploads then fail with ErrStorageUnavailable.
func NewService(repo Repository, blobs BlobStore) *Service {
	return &Service{repo: repo, blobs: blobs, now: time.Now}
}

type UploadParams struct {
	ContentType string
	Body        io.Reader
}

func (s *Service) Upload(ctx context.Context, coupleID, uploader uuid.UUID, p UploadParams) (*Item, error) {
	if s.blobs == nil {
		return nil, ErrStorageUnavailable
	}

	if _, ok := allowedTypes[p.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, p.ContentType)
	}

	item := &Item{
		ID:          uuid.New(),
		CoupleID:    coupleID,
		UploadedBy:  uploader,
		ContentType: p.ContentType,
		CreatedAt:   s.now().UTC(),
	}
	item.ObjectKey = ObjectKey(coupleID, item.ID, p.ContentType)

	// One extra byte tells an exact-limit upload apart from an oversized one.
	body := io.LimitReader(p.Body, MaxUploadBytes+1)

	n, err := s.blobs.Put(ctx, item.ObjectKey, p.ContentType, body)
	if err != nil {
		return nil, fmt.Errorf("storing media: %w", err)
	}

	if n == 0 || n > MaxUploadBytes {
		s.discard(ctx, item.ObjectKey)

		if n == 0 {
			return nil, ErrEmptyUpload
		}

		return nil, ErrTooLarge
	}

	item.Size = n

	if err := s.repo.CreateItem(ctx, item); err != nil {
		s.discard(ctx, item.ObjectKey)
		return nil, err
	}

	slog.Info("media uploaded", "couple_id", coupleID, "item_id", item.ID, "size", n)

	return item, nil
}

func (s *Service) discard(ctx context.Context, key string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.Error("failed to delete orphaned media object", "key", key, "error", err)
	}
}

// List returns the couple's items, newest first.
func (s *Service) List(ctx context.Context, coupleID uuid.UUID, limit int) ([]*Item, error) {
	return s.repo.ListItems(ctx, coupleID, limit)
}
