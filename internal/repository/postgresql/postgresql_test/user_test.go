package postgresql_test

import (
	"context"
	"testing"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/user"
	"github.com/koenig-hr/fnf-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("settle-2025"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	created, err := repo.Create(ctx, user.User{
		Username:           "priya",
		PasswordHash:       &hashStr,
		Role:               user.RolePayroll,
		MustChangePassword: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byName, err := repo.GetByUsername(ctx, "priya")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, user.RolePayroll, byName.Role)
	assert.True(t, byName.MustChangePassword)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "priya", byID.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	_, err := repo.Create(ctx, user.User{Username: "tina", Role: user.RoleTax})
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.User{Username: "tina", Role: user.RoleTax})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	repo := postgresql.NewUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	created, err := repo.Create(ctx, user.User{
		Username:           "tina",
		Role:               user.RoleTax,
		MustChangePassword: true,
	})
	require.NoError(t, err)
	assert.Nil(t, created.PasswordHash)

	hash, err := bcrypt.GenerateFromPassword([]byte("fresh-secret-1"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePassword(ctx, created.ID, string(hash), false))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PasswordHash)
	assert.False(t, got.MustChangePassword)

	err = repo.UpdatePassword(ctx, "00000000-0000-0000-0000-000000000000", string(hash), false)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
