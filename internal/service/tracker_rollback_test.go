package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/session"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndShift_RollbackOnFinalClose(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()
	clock := &session.Clock{}

	require.NoError(t, f.tracker.StartOrSwitch(ctx, clock, f.user.ID, f.segui.ID, nil, nil))
	workID := clock.EntryID

	// ExecContext #1 = close working entry, #2 = insert sentinel,
	// #3 = close sentinel. Fail on #3 so the whole shift-end unwinds.
	actRepo := repository.NewSQLiteActivityRepo(f.db)
	subRepo := repository.NewSQLiteSubactivityRepo(f.db)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     f.db,
		FailOn: 3,
		Err:    fmt.Errorf("injected sentinel close failure"),
	}
	tracker := NewTrackerService(f.ledger, actRepo, subRepo, failUoW)

	err := tracker.StartOrSwitch(ctx, clock, f.user.ID, f.salida.ID, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected sentinel close failure")

	// The working entry is still open and the clock still shows it.
	assert.Equal(t, workID, clock.EntryID)
	work, err := f.ledger.GetByID(ctx, workID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStarted, work.Status)
	assert.Nil(t, work.EndedAt)

	// No sentinel row leaked.
	n, err := f.ledger.CountOpen(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEndShift_RollbackOnSentinelInsert(t *testing.T) {
	f := newTrackerFixture(t)
	ctx := context.Background()
	clock := &session.Clock{}

	require.NoError(t, f.tracker.StartOrSwitch(ctx, clock, f.user.ID, f.segui.ID, nil, nil))
	workID := clock.EntryID

	actRepo := repository.NewSQLiteActivityRepo(f.db)
	subRepo := repository.NewSQLiteSubactivityRepo(f.db)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     f.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected sentinel insert failure"),
	}
	tracker := NewTrackerService(f.ledger, actRepo, subRepo, failUoW)

	err := tracker.StartOrSwitch(ctx, clock, f.user.ID, f.salida.ID, nil, nil)
	require.Error(t, err)

	// The close of the working entry rolled back with everything else.
	work, err := f.ledger.GetByID(ctx, workID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStarted, work.Status)
	assert.True(t, clock.Open())
}
