package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/cycle"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPredict_Empty(t *testing.T) {
	p, ok := cycle.Predict(nil, date(2026, 1, 1))
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestPredict_Windows(t *testing.T) {
	logs := []*cycle.Log{{StartDate: date(2026, 1, 1)}}

	tests := []struct {
		name          string
		today         time.Time
		daysUntilNext int
		fertile       bool
		ovulating     bool
	}{
		{"day of last period", date(2026, 1, 1), 28, false, false},
		{"day before window", date(2026, 1, 9), 20, false, false},
		{"window opens", date(2026, 1, 10), 19, true, false},
		{"ovulation", date(2026, 1, 15), 14, true, true},
		{"window closes", date(2026, 1, 16), 13, true, false},
		{"after window", date(2026, 1, 17), 12, false, false},
		{"next period", date(2026, 1, 29), 0, false, false},
		{"late", date(2026, 2, 2), -4, false, false},
		{"time of day ignored", time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC), 14, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := cycle.Predict(logs, tt.today)
			require.True(t, ok)

			assert.Equal(t, date(2026, 1, 1), p.LastPeriod)
			assert.Equal(t, date(2026, 1, 29), p.NextPeriod)
			assert.Equal(t, date(2026, 1, 15), p.OvulationDay)
			assert.Equal(t, date(2026, 1, 10), p.FertileStart)
			assert.Equal(t, date(2026, 1, 16), p.FertileEnd)
			assert.Equal(t, tt.daysUntilNext, p.DaysUntilNext)
			assert.Equal(t, tt.fertile, p.IsFertile)
			assert.Equal(t, tt.ovulating, p.IsOvulating)
		})
	}
}

func TestPredict_UsesMostRecentLog(t *testing.T) {
	logs := []*cycle.Log{
		{StartDate: date(2026, 2, 3)},
		{StartDate: date(2026, 1, 6)},
		{StartDate: date(2025, 12, 9)},
	}

	p, ok := cycle.Predict(logs, date(2026, 2, 10))
	require.True(t, ok)
	assert.Equal(t, date(2026, 2, 3), p.LastPeriod)
	assert.Equal(t, date(2026, 3, 3), p.NextPeriod)
	assert.Equal(t, 3, p.LogCount)
}

func TestPredict_AcrossLeapDay(t *testing.T) {
	p, ok := cycle.Predict([]*cycle.Log{{StartDate: date(2028, 2, 10)}}, date(2028, 2, 10))
	require.True(t, ok)
	assert.Equal(t, date(2028, 3, 9), p.NextPeriod)
	assert.Equal(t, 28, p.DaysUntilNext)
}

func TestParseFlow(t *testing.T) {
	f, err := cycle.ParseFlow(" Heavy ")
	require.NoError(t, err)
	assert.Equal(t, cycle.FlowHeavy, f)

	_, err = cycle.ParseFlow("torrential")
	assert.ErrorIs(t, err, cycle.ErrInvalidFlow)
}

func TestNormalizeSymptoms(t *testing.T) {
	got := cycle.NormalizeSymptoms([]string{"Cramps", " fatigue", "", "cramps", "bloating"})
	assert.Equal(t, []string{"bloating", "cramps", "fatigue"}, got)
}
