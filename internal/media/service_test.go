package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (m *memBlobs) Put(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	if m.putErr != nil {
		return 0, m.putErr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = data

	return int64(len(data)), nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)

	return nil
}

func TestService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	blobs := newMemBlobs()
	svc := NewService(repo, blobs)

	coupleID, uploader := uuid.New(), uuid.New()

	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, it *Item) error {
		assert.Equal(t, coupleID, it.CoupleID)
		assert.Equal(t, int64(5), it.Size)
		assert.True(t, strings.HasPrefix(it.ObjectKey, "couples/"+coupleID.String()+"/"))
		assert.True(t, strings.HasSuffix(it.ObjectKey, ".png"))
		return nil
	})

	item, err := svc.Upload(context.Background(), coupleID, uploader, UploadParams{
		ContentType: "image/png",
		Body:        strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), blobs.objects[item.ObjectKey])
}

func TestService_Upload_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		blobs       BlobStore
		contentType string
		body        io.Reader
		wantErr     error
	}{
		{"no storage", nil, "image/png", strings.NewReader("x"), ErrStorageUnavailable},
		{"unsupported type", newMemBlobs(), "application/pdf", strings.NewReader("x"), ErrUnsupportedType},
		{"empty", newMemBlobs(), "image/jpeg", strings.NewReader(""), ErrEmptyUpload},
		{"too large", newMemBlobs(), "video/mp4", bytes.NewReader(make([]byte, MaxUploadBytes+10)), ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewService(NewMockRepository(ctrl), tt.blobs)

			_, err := svc.Upload(context.Background(), uuid.New(), uuid.New(), UploadParams{ContentType: tt.contentType, Body: tt.body})
			assert.ErrorIs(t, err, tt.wantErr)

			if mb, ok := tt.blobs.(*memBlobs); ok {
				assert.Empty(t, mb.objects)
			}
		})
	}
}

func TestService_Upload_MetadataFailureRemovesObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	blobs := newMemBlobs()

	repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := NewService(repo, blobs).Upload(context.Background(), uuid.New(), uuid.New(), UploadParams{
		ContentType: "image/webp",
		Body:        strings.NewReader("data"),
	})
	assert.Error(t, err)
	assert.Empty(t, blobs.objects)
}
