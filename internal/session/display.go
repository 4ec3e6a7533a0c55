package session

import "time"

// StaleAfter is how long a Display ticks on the local clock before it
// flags itself for re-synchronization.
const StaleAfter = 5 * time.Minute

// Display keeps a live elapsed-time indicator in step with the store's
// clock without repeated round-trips. It snapshots the authoritative
// elapsed seconds once and then free-runs on the local clock:
//
//	shown = authoritative + (local_now − local_snapshot)
//
// After StaleAfter it reports stale, a purely visual hint that a fresh
// snapshot would re-synchronize. It is never a correctness mechanism; the
// store recomputes durations for every report.
type Display struct {
	authoritativeSec int
	snapshotAt       time.Time
}

// NewDisplay captures a display baseline from the store-reported elapsed
// seconds and the local instant the snapshot was taken.
func NewDisplay(authoritativeSec int, snapshotAt time.Time) Display {
	return Display{authoritativeSec: authoritativeSec, snapshotAt: snapshotAt}
}

// ElapsedSec returns the seconds to show at the given local instant.
func (d Display) ElapsedSec(now time.Time) int {
	drift := int(now.Sub(d.snapshotAt).Seconds())
	if drift < 0 {
		drift = 0
	}
	return d.authoritativeSec + drift
}

// Stale reports whether the display has free-run past StaleAfter.
func (d Display) Stale(now time.Time) bool {
	return now.Sub(d.snapshotAt) >= StaleAfter
}
