package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_Open(t *testing.T) {
	e := &LedgerEntry{StartedAt: time.Now()}
	assert.True(t, e.Open())

	end := time.Now()
	e.EndedAt = &end
	assert.False(t, e.Open())
}

func TestLedgerEntry_ElapsedAt(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("closed entry uses stored duration", func(t *testing.T) {
		d := 930
		end := start.Add(time.Duration(d) * time.Second)
		e := &LedgerEntry{StartedAt: start, EndedAt: &end, DurationSec: &d}
		assert.Equal(t, 930, e.ElapsedAt(end.Add(time.Hour)))
	})

	t.Run("open entry counts to now", func(t *testing.T) {
		e := &LedgerEntry{StartedAt: start}
		now := start.Add(15*time.Minute + 30*time.Second)
		assert.Equal(t, 930, e.ElapsedAt(now))
	})

	t.Run("closed entry without duration falls back to end minus start", func(t *testing.T) {
		end := start.Add(42 * time.Second)
		e := &LedgerEntry{StartedAt: start, EndedAt: &end}
		assert.Equal(t, 42, e.ElapsedAt(end))
	})
}

func TestFormatHMS(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatHMS(0))
	assert.Equal(t, "00:15:30", FormatHMS(930))
	assert.Equal(t, "23:59:59", FormatHMS(86399))
	assert.Equal(t, "00:00:00", FormatHMS(-5))
}
