package cycle

import (
	"time"
)

const (
	CycleLength     = 28
	LutealPhase     = 14
	fertileDaysPre  = 5
	fertileDaysPost = 1
)

const day = 24 * time.Hour

type Prediction struct {
	LastPeriod    time.Time
	NextPeriod    time.Time
	OvulationDay  time.Time
	FertileStart  time.Time
	FertileEnd    time.Time
	DaysUntilNext int
	IsFertile     bool
	IsOvulating   bool
	LogCount      int
}

// Predict projects the next period from the most recent log. It returns
// false when there are no logs. DaysUntilNext goes negative once the
// predicted date has passed.
func Predict(logs []*Log, today time.Time) (*Prediction, bool) {
	if len(logs) == 0 {
		return nil, false
	}

	last := Day(logs[0].StartDate)
	for _, l := range logs[1:] {
		if d := Day(l.StartDate); d.After(last) {
			last = d
		}
	}

	today = Day(today)
	next := last.AddDate(0, 0, CycleLength)
	ovulation := next.AddDate(0, 0, -LutealPhase)
	start := ovulation.AddDate(0, 0, -fertileDaysPre)
	end := ovulation.AddDate(0, 0, fertileDaysPost)

	return &Prediction{
		LastPeriod:    last,
		NextPeriod:    next,
		OvulationDay:  ovulation,
		FertileStart:  start,
		FertileEnd:    end,
		DaysUntilNext: int(next.Sub(today) / day),
		IsFertile:     !today.Before(start) && !today.After(end),
		IsOvulating:   today.Equal(ovulation),
		LogCount:      len(logs),
	}, true
}
