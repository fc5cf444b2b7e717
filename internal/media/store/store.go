package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/media"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateItem(ctx context.Context, item *media.Item) error {
	query := `
		INSERT INTO media_items (id, couple_id, uploaded_by, object_key, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := s.db.ExecContext(ctx, query,
		item.ID, item.CoupleID, item.UploadedBy, item.ObjectKey, item.ContentType, item.Size, item.CreatedAt,
	); err != nil {
		return fmt.Errorf("creating media item: %w", err)
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, coupleID uuid.UUID, limit int) ([]*media.Item, error) {
	query := `
		SELECT id, couple_id, uploaded_by, object_key, content_type, size_bytes, created_at
		FROM media_items
		WHERE couple_id = $1
		ORDER BY created_at DESC`

	args := []any{coupleID}
	if limit > 0 {
		query += " LIMIT $2"

		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing media items: %w", err)
	}
	defer rows.Close()

	var items []*media.Item

	for rows.Next() {
		var it media.Item
		if err := rows.Scan(&it.ID, &it.CoupleID, &it.UploadedBy, &it.ObjectKey, &it.ContentType, &it.Size, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning media item: %w", err)
		}

		items = append(items, &it)
	}

	return items, rows.Err()
}
