package service

import (
	"context"
	"testing"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/session"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreOpenActivity_RoundTrip(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	// First session starts an activity, then "disconnects".
	first := &session.Clock{}
	note := "cliente en espera"
	require.NoError(t, f.tracker.StartOrSwitch(ctx, first, f.user.ID, f.segui.ID, &f.reclamo.ID, &note))

	// A fresh session rehydrates from the ledger.
	second := &session.Clock{}
	restored, err := f.tracker.RestoreOpenActivity(ctx, second, f.user.ID)
	require.NoError(t, err)
	assert.True(t, restored)

	assert.Equal(t, first.EntryID, second.EntryID)
	assert.Equal(t, "Seguimiento", second.ActivityName)
	require.NotNil(t, second.Subactivity)
	assert.Equal(t, "Reclamo", *second.Subactivity)
	require.NotNil(t, second.Note)
	assert.Equal(t, note, *second.Note)
	require.NotNil(t, second.StartTime)
}

func TestRestoreOpenActivity_NothingToRestore(t *testing.T) {
	f := newTrackerFixture(t)
	clock := &session.Clock{}

	restored, err := f.tracker.RestoreOpenActivity(context.Background(), clock, f.user.ID)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.False(t, clock.Open())
	assert.True(t, clock.Restored())
}

func TestRestoreOpenActivity_CorruptStartTime(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	// Hand-written row with a garbage start timestamp.
	day := time.Now().UTC().Format("2006-01-02")
	_, err := f.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, user_id, activity_id, day, started_at, status)
		 VALUES ('broken-entry', ?, ?, ?, 'ayer por la tarde', 'Iniciado')`,
		f.user.ID, f.segui.ID, day)
	require.NoError(t, err)

	clock := &session.Clock{}
	restored, err := f.tracker.RestoreOpenActivity(ctx, clock, f.user.ID)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.False(t, clock.Open())
	assert.True(t, clock.Restored())
}

func TestRestoreOpenActivity_OncePerSession(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()
	clock := &session.Clock{}

	restored, err := f.tracker.RestoreOpenActivity(ctx, clock, f.user.ID)
	require.NoError(t, err)
	assert.False(t, restored)

	// An entry appearing later does not get picked up: rehydration already
	// ran for this session.
	require.NoError(t, f.tracker.StartOrSwitch(ctx, &session.Clock{}, f.user.ID, f.segui.ID, nil, nil))
	restored, err = f.tracker.RestoreOpenActivity(ctx, clock, f.user.ID)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestCloseStaleDay(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()

	// Entry left open yesterday evening; the clock still remembers it.
	start := time.Date(2025, 3, 10, 22, 45, 0, 0, time.UTC)
	e := testutil.NewTestEntry(f.user.ID, f.segui.ID, start)
	require.NoError(t, f.ledger.Create(ctx, e))

	clock := &session.Clock{
		ActivityID:   f.segui.ID,
		ActivityName: "Seguimiento",
		StartTime:    &start,
		EntryID:      e.ID,
	}

	now := time.Date(2025, 3, 11, 8, 30, 0, 0, time.UTC)
	closed, err := f.tracker.CloseStaleDay(ctx, clock, f.user.ID, now)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.False(t, clock.Open())

	got, err := f.ledger.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAutoClosed, got.Status)
	require.NotNil(t, got.EndedAt)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC), got.EndedAt.UTC())
}

func TestCloseStaleDay_CurrentDayUntouched(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()
	clock := &session.Clock{}

	require.NoError(t, f.tracker.StartOrSwitch(ctx, clock, f.user.ID, f.segui.ID, nil, nil))

	closed, err := f.tracker.CloseStaleDay(ctx, clock, f.user.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, closed)
	assert.True(t, clock.Open())
}

func TestCloseStaleDay_EmptyClock(t *testing.T) {
	f := newTrackerFixture(t)

	closed, err := f.tracker.CloseStaleDay(context.Background(), &session.Clock{}, f.user.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, closed)
}
