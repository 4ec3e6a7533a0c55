package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_OpenAndClear(t *testing.T) {
	c := &Clock{}
	assert.False(t, c.Open())

	start := time.Now().UTC()
	sub := "Reclamo"
	note := "CLI-0003 billing issue"
	c.ActivityID = "act-1"
	c.ActivityName = "Seguimiento"
	c.Subactivity = &sub
	c.Note = &note
	c.StartTime = &start
	c.EntryID = "reg-1"
	c.MarkRestored()

	assert.True(t, c.Open())

	c.Clear()
	assert.False(t, c.Open())
	assert.Empty(t, c.ActivityID)
	assert.Empty(t, c.ActivityName)
	assert.Nil(t, c.Subactivity)
	assert.Nil(t, c.Note)
	assert.Nil(t, c.StartTime)
	assert.Empty(t, c.EntryID)
	// Clear must not re-enable rehydration.
	assert.True(t, c.Restored())
}

func TestClock_StaleSince(t *testing.T) {
	today := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

	t.Run("empty clock is never stale", func(t *testing.T) {
		c := &Clock{}
		_, stale := c.StaleSince(today)
		assert.False(t, stale)
	})

	t.Run("same-day start is not stale", func(t *testing.T) {
		start := time.Date(2025, 3, 11, 7, 30, 0, 0, time.UTC)
		c := &Clock{EntryID: "reg-1", StartTime: &start}
		_, stale := c.StaleSince(today)
		assert.False(t, stale)
	})

	t.Run("previous-day start is stale", func(t *testing.T) {
		start := time.Date(2025, 3, 10, 22, 45, 0, 0, time.UTC)
		c := &Clock{EntryID: "reg-1", StartTime: &start}
		day, stale := c.StaleSince(today)
		assert.True(t, stale)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), day)
	})
}

func TestDisplay_ElapsedSec(t *testing.T) {
	snap := time.Date(2025, 3, 11, 9, 20, 0, 0, time.UTC)
	d := NewDisplay(1200, snap)

	assert.Equal(t, 1200, d.ElapsedSec(snap))
	assert.Equal(t, 1215, d.ElapsedSec(snap.Add(15*time.Second)))
	// A local clock stepping backwards never rewinds the display.
	assert.Equal(t, 1200, d.ElapsedSec(snap.Add(-10*time.Second)))
}

func TestDisplay_Stale(t *testing.T) {
	snap := time.Date(2025, 3, 11, 9, 20, 0, 0, time.UTC)
	d := NewDisplay(0, snap)

	assert.False(t, d.Stale(snap.Add(4*time.Minute+59*time.Second)))
	assert.True(t, d.Stale(snap.Add(5*time.Minute)))
	assert.True(t, d.Stale(snap.Add(time.Hour)))
}
