package repository

import (
	"context"
	"testing"
	"time"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerTestSetup creates the user/activity scaffolding ledger tests need.
func ledgerTestSetup(t *testing.T) (*SQLiteLedgerRepo, string, *domain.Activity, *domain.Activity) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	userRepo := NewSQLiteUserRepo(database)
	actRepo := NewSQLiteActivityRepo(database)
	ledger := NewSQLiteLedgerRepo(database)

	user := testutil.NewTestUser("Maria Quispe")
	require.NoError(t, userRepo.Create(ctx, user))

	seguimiento := testutil.NewTestActivity("Seguimiento", testutil.WithOrder(10))
	require.NoError(t, actRepo.Create(ctx, seguimiento))
	correo := testutil.NewTestActivity("Bandeja de Correo", testutil.WithOrder(20))
	require.NoError(t, actRepo.Create(ctx, correo))

	return ledger, user.ID, seguimiento, correo
}

func TestLedgerRepo_StartAndGetByID(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	note := "CLI-0003 billing issue"
	id := uuid.New().String()
	e, err := ledger.Start(ctx, id, userID, act.ID, nil, &note)
	require.NoError(t, err)

	assert.Equal(t, id, e.ID)
	assert.Equal(t, userID, e.UserID)
	assert.Equal(t, act.ID, e.ActivityID)
	assert.Equal(t, domain.StatusStarted, e.Status)
	assert.Nil(t, e.EndedAt)
	assert.Nil(t, e.DurationSec)
	require.NotNil(t, e.Note)
	assert.Equal(t, note, *e.Note)
	// Day and start come from the store clock.
	assert.Equal(t, e.StartedAt.UTC().Format("2006-01-02"), e.Day)
	assert.WithinDuration(t, time.Now().UTC(), e.StartedAt, 5*time.Second)
}

func TestLedgerRepo_CloseOpen(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	_, err := ledger.Start(ctx, uuid.New().String(), userID, act.ID, nil, nil)
	require.NoError(t, err)

	n, err := ledger.CloseOpen(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	open, err := ledger.CountOpen(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, open)

	// Closing again is a no-op, not an error.
	n, err = ledger.CloseOpen(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedgerRepo_CloseOpen_SetsDurationAndStatus(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	// Backdated open entry: the store-clock close must compute ~10 minutes.
	e := testutil.NewTestEntry(userID, act.ID, time.Now().UTC().Add(-10*time.Minute))
	require.NoError(t, ledger.Create(ctx, e))

	n, err := ledger.CloseOpen(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	closed, err := ledger.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, closed.Status)
	require.NotNil(t, closed.EndedAt)
	require.NotNil(t, closed.DurationSec)
	assert.InDelta(t, 600, *closed.DurationSec, 10)
}

func TestLedgerRepo_CloseOpenAt_DayRollover(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	// Entry left open on D1 at 22:45.
	d1Start := time.Date(2025, 3, 10, 22, 45, 0, 0, time.UTC)
	e := testutil.NewTestEntry(userID, act.ID, d1Start)
	require.NoError(t, ledger.Create(ctx, e))

	end := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	n, err := ledger.CloseOpenAt(ctx, userID, d1Start, end, domain.StatusAutoClosed)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	closed, err := ledger.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAutoClosed, closed.Status)
	require.NotNil(t, closed.EndedAt)
	assert.Equal(t, end, closed.EndedAt.UTC())
	require.NotNil(t, closed.DurationSec)
	// 22:45:00 → 23:59:59 is 1h14m59s.
	assert.Equal(t, 4499, *closed.DurationSec)
}

func TestLedgerRepo_CloseOpenAt_OnlyTargetsGivenDay(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	today := time.Now().UTC()
	e, err := ledger.Start(ctx, uuid.New().String(), userID, act.ID, nil, nil)
	require.NoError(t, err)

	stale := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	n, err := ledger.CloseOpenAt(ctx, userID, stale, stale.Add(24*time.Hour-time.Second), domain.StatusAutoClosed)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := ledger.GetOpen(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestLedgerRepo_GetOpen(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	_, err := ledger.GetOpen(ctx, userID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)

	note := "ongoing"
	started, err := ledger.Start(ctx, uuid.New().String(), userID, act.ID, nil, &note)
	require.NoError(t, err)

	open, err := ledger.GetOpen(ctx, userID, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, started.ID, open.ID)
	assert.Equal(t, "Seguimiento", open.ActivityName)
	assert.Nil(t, open.SubactivityName)
}

func TestLedgerRepo_OpenElapsedSec(t *testing.T) {
	ledger, userID, act, _ := ledgerTestSetup(t)
	ctx := context.Background()

	e := testutil.NewTestEntry(userID, act.ID, time.Now().UTC().Add(-90*time.Second))
	require.NoError(t, ledger.Create(ctx, e))

	sec, err := ledger.OpenElapsedSec(ctx, e.ID)
	require.NoError(t, err)
	assert.InDelta(t, 90, sec, 5)

	_, err = ledger.OpenElapsedSec(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerRepo_ListDay_MostRecentFirst(t *testing.T) {
	ledger, userID, act, correo := ledgerTestSetup(t)
	ctx := context.Background()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := testutil.NewTestEntry(userID, act.ID, day.Add(9*time.Hour),
		testutil.WithEnd(day.Add(9*time.Hour+930*time.Second)))
	second := testutil.NewTestEntry(userID, correo.ID, day.Add(9*time.Hour+930*time.Second))
	require.NoError(t, ledger.Create(ctx, first))
	require.NoError(t, ledger.Create(ctx, second))

	rows, err := ledger.ListDay(ctx, userID, day)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bandeja de Correo", rows[0].ActivityName)
	assert.Equal(t, "Seguimiento", rows[1].ActivityName)
	require.NotNil(t, rows[1].DurationSec)
	assert.Equal(t, 930, *rows[1].DurationSec)
	assert.Nil(t, rows[0].DurationSec)
}
