package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/google/uuid"
)

var usernameCounter atomic.Int64

func NewTestRole(name string) *domain.Role {
	return &domain.Role{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestCampaign(name string) *domain.Campaign {
	return &domain.Campaign{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// User options

type UserOption func(*domain.User)

func WithRole(roleID string) UserOption {
	return func(u *domain.User) {
		u.RoleID = &roleID
	}
}

func WithCampaign(campaignID string) UserOption {
	return func(u *domain.User) {
		u.CampaignID = &campaignID
	}
}

func WithInactive() UserOption {
	return func(u *domain.User) {
		u.Active = false
	}
}

func WithPasswordHash(hash string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = hash
	}
}

func NewTestUser(fullName string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New().String(),
		Username:     fmt.Sprintf("user%03d", usernameCounter.Add(1)),
		PasswordHash: "$2a$10$test-not-a-real-hash",
		FullName:     fullName,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Activity options

type ActivityOption func(*domain.Activity)

func WithOrder(n int) ActivityOption {
	return func(a *domain.Activity) {
		a.DisplayOrder = n
	}
}

func WithInactiveActivity() ActivityOption {
	return func(a *domain.Activity) {
		a.Active = false
	}
}

func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:     uuid.New().String(),
		Name:   name,
		Active: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewTestSubactivity(activityID, name string) *domain.Subactivity {
	return &domain.Subactivity{
		ID:         uuid.New().String(),
		ActivityID: activityID,
		Name:       name,
		Active:     true,
	}
}

// Ledger entry options

type EntryOption func(*domain.LedgerEntry)

func WithEnd(end time.Time) EntryOption {
	return func(e *domain.LedgerEntry) {
		u := end.UTC()
		e.EndedAt = &u
		d := int(u.Sub(e.StartedAt).Seconds())
		e.DurationSec = &d
		e.Status = domain.StatusFinished
	}
}

func WithSubactivityID(id string) EntryOption {
	return func(e *domain.LedgerEntry) {
		e.SubactivityID = &id
	}
}

func WithEntryNote(note string) EntryOption {
	return func(e *domain.LedgerEntry) {
		e.Note = &note
	}
}

func WithStatus(s domain.EntryStatus) EntryOption {
	return func(e *domain.LedgerEntry) {
		e.Status = s
	}
}

// NewTestEntry builds an open entry starting at the given instant; options
// close it or attach detail. Day derives from the start time, matching what
// the store clock would record.
func NewTestEntry(userID, activityID string, start time.Time, opts ...EntryOption) *domain.LedgerEntry {
	e := &domain.LedgerEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		ActivityID: activityID,
		Day:        start.UTC().Format("2006-01-02"),
		StartedAt:  start.UTC(),
		Status:     domain.StatusStarted,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
