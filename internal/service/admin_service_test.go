package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAdminFixture(t *testing.T) (AdminService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewAdminService(
		repository.NewSQLiteCampaignRepo(database),
		repository.NewSQLiteRoleRepo(database),
		repository.NewSQLiteUserRepo(database),
		testutil.NewTestUoW(database),
	)
	return svc, database
}

func TestAdmin_CampaignLifecycle(t *testing.T) {
	svc, _ := newAdminFixture(t)
	ctx := context.Background()

	c, err := svc.CreateCampaign(ctx, "  Movistar  ")
	require.NoError(t, err)
	assert.Equal(t, "Movistar", c.Name)

	_, err = svc.CreateCampaign(ctx, "Movistar")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	require.NoError(t, svc.RenameCampaign(ctx, c.ID, "Movistar Perú"))
	list, err := svc.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Movistar Perú", list[0].Name)

	require.NoError(t, svc.DeleteCampaign(ctx, c.ID))
	list, err = svc.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAdmin_DeleteCampaignWithUsersRefused(t *testing.T) {
	svc, _ := newAdminFixture(t)
	ctx := context.Background()

	c, err := svc.CreateCampaign(ctx, "Movistar")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "mquispe", "secreto", "Maria Quispe", nil, &c.ID)
	require.NoError(t, err)

	err = svc.DeleteCampaign(ctx, c.ID)
	assert.ErrorIs(t, err, repository.ErrInUse)

	// Campaign survives the refused delete.
	list, err := svc.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdmin_DeleteRoleWithUsersRefused(t *testing.T) {
	svc, _ := newAdminFixture(t)
	ctx := context.Background()

	r, err := svc.CreateRole(ctx, "Asesor")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "jmamani", "secreto", "Jorge Mamani", &r.ID, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRole(ctx, r.ID), repository.ErrInUse)

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestAdmin_CreateUser(t *testing.T) {
	svc, database := newAdminFixture(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "mquispe", "secreto", "Maria Quispe", nil, nil)
	require.NoError(t, err)
	assert.True(t, u.Active)
	// The stored hash verifies against the clear password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto")))

	_, err = svc.CreateUser(ctx, "mquispe", "otra", "Otra Persona", nil, nil)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = svc.CreateUser(ctx, "corto", "abc", "Clave Corta", nil, nil)
	assert.Error(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	// Deactivation keeps the row.
	require.NoError(t, svc.SetUserActive(ctx, u.ID, false))
	got, err := repository.NewSQLiteUserRepo(database).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestAdmin_ResetPassword(t *testing.T) {
	svc, database := newAdminFixture(t)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "mquispe", "secreto", "Maria Quispe", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, u.ID, "nuevaclave"))

	got, err := repository.NewSQLiteUserRepo(database).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("nuevaclave")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("secreto")))
}
