package service

import (
	"context"
	"testing"

	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) CatalogService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewCatalogService(
		repository.NewSQLiteActivityRepo(database),
		repository.NewSQLiteSubactivityRepo(database),
	)
}

func TestCatalog_ListForTracking_EmptyCatalogBlocks(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.ListForTracking(ctx)
	assert.ErrorIs(t, err, ErrNoActivities)

	a, err := svc.CreateActivity(ctx, "Seguimiento", "", 10)
	require.NoError(t, err)

	list, err := svc.ListForTracking(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Deactivating the only activity blocks tracking again.
	require.NoError(t, svc.DeactivateActivity(ctx, a.ID))
	_, err = svc.ListForTracking(ctx)
	assert.ErrorIs(t, err, ErrNoActivities)
}

func TestCatalog_ActivityValidation(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateActivity(ctx, "   ", "", 0)
	assert.Error(t, err)

	_, err = svc.CreateActivity(ctx, "Seguimiento", "", 10)
	require.NoError(t, err)
	_, err = svc.CreateActivity(ctx, "Seguimiento", "", 20)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCatalog_ListActivitiesIncludeInactive(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	a, err := svc.CreateActivity(ctx, "Reunión", "", 0)
	require.NoError(t, err)
	_, err = svc.CreateActivity(ctx, "Seguimiento", "", 10)
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateActivity(ctx, a.ID))

	active, err := svc.ListActivities(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListActivities(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalog_Subactivities(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	a, err := svc.CreateActivity(ctx, "Seguimiento", "", 10)
	require.NoError(t, err)

	_, err = svc.CreateSubactivity(ctx, "no-such-activity", "Reclamo", 0)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	sub, err := svc.CreateSubactivity(ctx, a.ID, "Reclamo", 0)
	require.NoError(t, err)

	list, err := svc.ListSubactivities(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Reclamo", list[0].Name)

	require.NoError(t, svc.DeactivateSubactivity(ctx, sub.ID))
	list, err = svc.ListSubactivities(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
