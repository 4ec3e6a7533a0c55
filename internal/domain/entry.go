package domain

import "time"

// LedgerEntry is one durable row recording a single activity session for
// one user. Entries are created open (no EndedAt) and mutated exactly once
// when closed; they are never deleted.
type LedgerEntry struct {
	ID            string
	UserID        string
	ActivityID    string
	SubactivityID *string
	Day           string // YYYY-MM-DD, store-clock date at start
	StartedAt     time.Time
	EndedAt       *time.Time
	DurationSec   *int
	Note          *string
	Status        EntryStatus
}

// Open reports whether the entry is still running.
func (e *LedgerEntry) Open() bool {
	return e.EndedAt == nil
}

// ElapsedAt returns the entry's accumulated seconds at the given instant:
// the stored duration when closed, now minus start while open.
func (e *LedgerEntry) ElapsedAt(now time.Time) int {
	if e.DurationSec != nil {
		return *e.DurationSec
	}
	if e.EndedAt != nil {
		return int(e.EndedAt.Sub(e.StartedAt).Seconds())
	}
	return int(now.Sub(e.StartedAt).Seconds())
}

// EntryDetail is a LedgerEntry joined with its activity and subactivity
// names for display.
type EntryDetail struct {
	LedgerEntry
	ActivityName    string
	SubactivityName *string
}
