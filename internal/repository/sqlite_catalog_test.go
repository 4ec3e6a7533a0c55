package repository

import (
	"context"
	"testing"

	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepo_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	a := testutil.NewTestActivity("Seguimiento", testutil.WithOrder(10))
	a.Description = "Atención de casos abiertos"
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seguimiento", got.Name)
	assert.Equal(t, "Atención de casos abiertos", got.Description)
	assert.Equal(t, 10, got.DisplayOrder)
	assert.True(t, got.Active)

	got.Name = "Seguimiento de Casos"
	require.NoError(t, repo.Update(ctx, got))

	byName, err := repo.GetByName(ctx, "Seguimiento de Casos")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byName.ID)

	_, err = repo.GetByName(ctx, "Seguimiento")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityRepo_DuplicateName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestActivity("Capacitación")))
	err := repo.Create(ctx, testutil.NewTestActivity("Capacitación"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestActivityRepo_DeactivateIsSoft(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	a := testutil.NewTestActivity("Reunión")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Deactivate(ctx, a.ID))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The row survives for historical reporting.
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	assert.ErrorIs(t, repo.Deactivate(ctx, "missing"), ErrNotFound)
}

func TestActivityRepo_ListActiveOrdering(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestActivity("Salida", testutil.WithOrder(99))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestActivity("Seguimiento", testutil.WithOrder(10))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestActivity("Bandeja de Correo", testutil.WithOrder(10))))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// display_order first, name breaks ties.
	assert.Equal(t, "Bandeja de Correo", list[0].Name)
	assert.Equal(t, "Seguimiento", list[1].Name)
	assert.Equal(t, "Salida", list[2].Name)
}

func TestSubactivityRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	actRepo := NewSQLiteActivityRepo(database)
	subRepo := NewSQLiteSubactivityRepo(database)
	ctx := context.Background()

	act := testutil.NewTestActivity("Seguimiento")
	require.NoError(t, actRepo.Create(ctx, act))

	reclamo := testutil.NewTestSubactivity(act.ID, "Reclamo")
	consulta := testutil.NewTestSubactivity(act.ID, "Consulta")
	require.NoError(t, subRepo.Create(ctx, reclamo))
	require.NoError(t, subRepo.Create(ctx, consulta))

	// Same name under the same activity is rejected.
	err := subRepo.Create(ctx, testutil.NewTestSubactivity(act.ID, "Reclamo"))
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same name under a different activity is fine.
	other := testutil.NewTestActivity("Bandeja de Correo")
	require.NoError(t, actRepo.Create(ctx, other))
	require.NoError(t, subRepo.Create(ctx, testutil.NewTestSubactivity(other.ID, "Reclamo")))

	byAct, err := subRepo.ListActiveByActivity(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, byAct, 2)

	require.NoError(t, subRepo.Deactivate(ctx, consulta.ID))
	byAct, err = subRepo.ListActiveByActivity(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, byAct, 1)
	assert.Equal(t, "Reclamo", byAct[0].Name)

	all, err := subRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, d := range all {
		assert.NotEmpty(t, d.ActivityName)
	}
}

func TestCampaignRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	campRepo := NewSQLiteCampaignRepo(database)
	userRepo := NewSQLiteUserRepo(database)
	ctx := context.Background()

	c := testutil.NewTestCampaign("Movistar Chile")
	require.NoError(t, campRepo.Create(ctx, c))

	err := campRepo.Create(ctx, testutil.NewTestCampaign("Movistar Chile"))
	assert.ErrorIs(t, err, ErrDuplicate)

	c.Name = "Movistar Perú"
	require.NoError(t, campRepo.Update(ctx, c))

	got, err := campRepo.GetByName(ctx, "Movistar Perú")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	n, err := campRepo.CountUsers(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, userRepo.Create(ctx, testutil.NewTestUser("Maria Quispe", testutil.WithCampaign(c.ID))))
	n, err = campRepo.CountUsers(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, campRepo.Delete(ctx, c.ID))
	_, err = campRepo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, campRepo.Delete(ctx, c.ID), ErrNotFound)
}

func TestRoleRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	roleRepo := NewSQLiteRoleRepo(database)
	userRepo := NewSQLiteUserRepo(database)
	ctx := context.Background()

	role := testutil.NewTestRole(domain.RoleAsesor)
	require.NoError(t, roleRepo.Create(ctx, role))

	got, err := roleRepo.GetByName(ctx, domain.RoleAsesor)
	require.NoError(t, err)
	assert.Equal(t, role.ID, got.ID)

	require.NoError(t, userRepo.Create(ctx, testutil.NewTestUser("Jorge Mamani", testutil.WithRole(role.ID))))
	n, err := roleRepo.CountUsers(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := roleRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	roleRepo := NewSQLiteRoleRepo(database)
	campRepo := NewSQLiteCampaignRepo(database)
	userRepo := NewSQLiteUserRepo(database)
	ctx := context.Background()

	role := testutil.NewTestRole(domain.RoleAsesor)
	require.NoError(t, roleRepo.Create(ctx, role))
	camp := testutil.NewTestCampaign("General")
	require.NoError(t, campRepo.Create(ctx, camp))

	u := testutil.NewTestUser("Maria Quispe", testutil.WithRole(role.ID), testutil.WithCampaign(camp.ID))
	require.NoError(t, userRepo.Create(ctx, u))

	exists, err := userRepo.UsernameExists(ctx, u.Username)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = userRepo.UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	err = userRepo.Create(ctx, &domain.User{
		ID: "dup", Username: u.Username, PasswordHash: "x", FullName: "Dup",
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt, Active: true,
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	byName, err := userRepo.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	require.NotNil(t, byName.RoleID)
	assert.Equal(t, role.ID, *byName.RoleID)

	require.NoError(t, userRepo.SetActive(ctx, u.ID, false))
	got, err := userRepo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	list, err := userRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].RoleName)
	assert.Equal(t, domain.RoleAsesor, *list[0].RoleName)
	require.NotNil(t, list[0].CampaignName)
	assert.Equal(t, "General", *list[0].CampaignName)
}
