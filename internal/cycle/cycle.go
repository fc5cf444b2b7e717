package cycle

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Flow is the reported intensity of a period.
type Flow string

const (
	FlowLight    Flow = "light"
	FlowMedium   Flow = "medium"
	FlowHeavy    Flow = "heavy"
	FlowSpotting Flow = "spotting"
)

var (
	ErrInvalidFlow = errors.New("invalid flow intensity")
	ErrInvalidDate = errors.New("invalid start date")
	ErrInvalidCSV  = errors.New("invalid cycle csv")
)

func ParseFlow(s string) (Flow, error) {
	switch f := Flow(strings.ToLower(strings.TrimSpace(s))); f {
	case FlowLight, FlowMedium, FlowHeavy, FlowSpotting:
		return f, nil
	}

	return "", ErrInvalidFlow
}

// Log records the start of one period.
type Log struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	StartDate time.Time
	Symptoms  []string
	Flow      Flow
	CreatedAt time.Time
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeSymptoms lower-cases, trims, deduplicates and sorts symptoms.
func NormalizeSymptoms(in []string) []string {
	out := make([]string, 0, len(in))

	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}

	slices.Sort(out)

	return slices.Compact(out)
}
