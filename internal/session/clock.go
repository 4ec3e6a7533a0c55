// Package session holds the per-operator transient state: the Clock
// mirroring the currently open ledger entry, and the Display that keeps a
// ticking elapsed indicator in step with the store's clock. Neither is
// shared between sessions; both are passed explicitly, never ambient.
package session

import "time"

// Clock mirrors the currently open ledger entry for one operator session.
// It exists for display only; the ledger keeps the authoritative start
// time. At most one activity is open per user, so the zero Clock means
// "nothing running".
type Clock struct {
	ActivityID   string
	ActivityName string
	Subactivity  *string
	Note         *string
	// StartTime is the locally remembered start instant, used only to
	// drive the ticking display and the stale-day check. Never written
	// back to the ledger.
	StartTime *time.Time
	// EntryID is the backing ledger row, empty when nothing is open.
	EntryID string

	restored bool
}

// Open reports whether the clock tracks a running entry.
func (c *Clock) Open() bool {
	return c.EntryID != ""
}

// Clear resets every field to its empty state. Called on logout, after the
// end-of-shift sentinel, and after a stale-day closure. The restore marker
// survives: rehydration stays once-per-session.
func (c *Clock) Clear() {
	c.ActivityID = ""
	c.ActivityName = ""
	c.Subactivity = nil
	c.Note = nil
	c.StartTime = nil
	c.EntryID = ""
}

// MarkRestored records that open-entry rehydration ran for this session.
func (c *Clock) MarkRestored() { c.restored = true }

// Restored reports whether rehydration already ran.
func (c *Clock) Restored() bool { return c.restored }

// StaleSince returns the remembered start day when it precedes today,
// meaning the session was left open across midnight. The second result is
// false when the clock is empty or current.
func (c *Clock) StaleSince(today time.Time) (time.Time, bool) {
	if !c.Open() || c.StartTime == nil {
		return time.Time{}, false
	}
	startDay := c.StartTime.Truncate(24 * time.Hour)
	if startDay.Before(today.Truncate(24 * time.Hour)) {
		return startDay, true
	}
	return time.Time{}, false
}
