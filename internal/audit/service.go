package audit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEvent = errors.New("invalid audit event")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=audit
type Repository interface {
	CreateEvent(ctx context.Context, e *Event) error
	ListEvents(ctx context.Context, limit int) ([]*Event, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Record appends an event. Failures are logged and swallowed so auditing
// never fails the operation being audited.
func (s *Service) Record(ctx context.Context, actor uuid.UUID, action Action, subject string, details map[string]any) {
	e := &Event{
		ID:        uuid.New(),
		Action:    action,
		Subject:   subject,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}
	if actor != uuid.Nil {
		e.ActorID = &actor
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		slog.Error("failed to record audit event", "action", action, "subject", subject, "error", err)
	}
}

// Report stores an event submitted by a client. Unlike Record it returns
// the storage error to the caller.
func (s *Service) Report(ctx context.Context, actor uuid.UUID, kind string, details map[string]any) (*Event, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" || len(kind) > 100 {
		return nil, ErrInvalidEvent
	}

	e := &Event{
		ID:        uuid.New(),
		ActorID:   &actor,
		Action:    ActionClientReported,
		Subject:   kind,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// List returns the newest events first.
func (s *Service) List(ctx context.Context, limit int) ([]*Event, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	return s.repo.ListEvents(ctx, limit)
}
