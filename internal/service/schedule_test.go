package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	// 2026-08-19 为周三
	wednesday := time.Date(2026, 8, 19, 10, 20, 30, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		cadence Cadence
		want    time.Time
	}{
		{
			name:    "hourly rounds up to next full hour",
			now:     wednesday,
			cadence: CadenceHourly,
			want:    time.Date(2026, 8, 19, 11, 0, 0, 0, time.UTC),
		},
		{
			name:    "hourly exactly on the hour moves to next",
			now:     time.Date(2026, 8, 19, 11, 0, 0, 0, time.UTC),
			cadence: CadenceHourly,
			want:    time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC),
		},
		{
			name:    "daily moves to next midnight",
			now:     wednesday,
			cadence: CadenceDaily,
			want:    time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "weekly moves to next sunday midnight",
			now:     wednesday,
			cadence: CadenceWeekly,
			want:    time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "weekly on sunday moves a full week",
			now:     time.Date(2026, 8, 23, 8, 0, 0, 0, time.UTC),
			cadence: CadenceWeekly,
			want:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "unknown cadence treated as hourly",
			now:     wednesday,
			cadence: Cadence("every-minute"),
			want:    time.Date(2026, 8, 19, 11, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextRun(tt.now, tt.cadence)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextRunDisabled(t *testing.T) {
	_, ok := NextRun(time.Now(), CadenceDisabled)
	assert.False(t, ok)
}
