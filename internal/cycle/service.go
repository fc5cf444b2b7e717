package cycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cycle
type Repository interface {
	CreateLogs(ctx context.Context, logs ...*Log) error
	ListLogs(ctx context.Context, accountID uuid.UUID, limit int) ([]*Log, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type AppendParams struct {
	StartDate time.Time
	Symptoms  []string
	Flow      Flow
}

func (s *Service) newLog(accountID uuid.UUID, p AppendParams) (*Log, error) {
	if p.StartDate.IsZero() {
		return nil, ErrInvalidDate
	}

	flow, err := ParseFlow(string(p.Flow))
	if err != nil {
		return nil, err
	}

	return &Log{
		ID:        uuid.New(),
		AccountID: accountID,
		StartDate: Day(p.StartDate),
		Symptoms:  NormalizeSymptoms(p.Symptoms),
		Flow:      flow,
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *Service) Append(ctx context.Context, accountID uuid.UUID, p AppendParams) (*Log, error) {
	log, err := s.newLog(accountID, p)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateLogs(ctx, log); err != nil {
		return nil, err
	}

	return log, nil
}

// List returns logs most recent first.
func (s *Service) List(ctx context.Context, accountID uuid.UUID, limit int) ([]*Log, error) {
	return s.repo.ListLogs(ctx, accountID, limit)
}

// Predict is recomputed from the stored logs on every call.
func (s *Service) Predict(ctx context.Context, accountID uuid.UUID, today time.Time) (*Prediction, bool, error) {
	logs, err := s.repo.ListLogs(ctx, accountID, 0)
	if err != nil {
		return nil, false, err
	}

	p, ok := Predict(logs, today)

	return p, ok, nil
}

type ImportResult struct {
	Imported []*Log
	// Duplicates are rows whose start date is already logged.
	Duplicates []AppendParams
}

// Import parses a CSV export and stores the rows whose start date is not
// logged yet. Nothing is stored if any row is invalid.
func (s *Service) Import(ctx context.Context, accountID uuid.UUID, r io.Reader) (*ImportResult, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListLogs(ctx, accountID, 0)
	if err != nil {
		return nil, fmt.Errorf("listing existing logs: %w", err)
	}

	seen := make(map[time.Time]bool, len(existing))
	for _, l := range existing {
		seen[Day(l.StartDate)] = true
	}

	res := &ImportResult{}

	for _, p := range rows {
		d := Day(p.StartDate)
		if seen[d] {
			res.Duplicates = append(res.Duplicates, p)
			continue
		}

		seen[d] = true

		log, err := s.newLog(accountID, p)
		if err != nil {
			return nil, err
		}

		res.Imported = append(res.Imported, log)
	}

	if len(res.Imported) > 0 {
		if err := s.repo.CreateLogs(ctx, res.Imported...); err != nil {
			return nil, err
		}
	}

	slog.Info("cycle logs imported", "account_id", accountID, "imported", len(res.Imported), "duplicates", len(res.Duplicates))

	return res, nil
}
