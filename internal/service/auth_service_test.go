package service

import (
	"context"
	"testing"

	"github.com/dquispe/jornada/internal/repository"
	"github.com/dquispe/jornada/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	database := testutil.NewTestDB(t)
	userRepo := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := testutil.NewTestUser("Maria Quispe", testutil.WithPasswordHash(string(hash)))
	require.NoError(t, userRepo.Create(ctx, u))

	svc := NewAuthService(userRepo)

	got, err := svc.Login(ctx, u.Username, "secreto123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, u.Username, "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	// Unknown usernames come back as the same error as bad passwords.
	_, err = svc.Login(ctx, "nobody", "secreto123")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLogin_InactiveUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	userRepo := repository.NewSQLiteUserRepo(database)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := testutil.NewTestUser("Jorge Mamani",
		testutil.WithPasswordHash(string(hash)), testutil.WithInactive())
	require.NoError(t, userRepo.Create(ctx, u))

	_, err = NewAuthService(userRepo).Login(ctx, u.Username, "secreto123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
