package repository

import (
	"context"
	"testing"

	"verdant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "taken@example.com")

	err := repo.Create(ctx, &models.User{
		FullName: "Second User",
		Email:    "taken@example.com",
		Password: "hash",
		Role:     models.RoleUser,
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := createTestUser(t, db, "present@example.com")

	user, err := repo.GetByEmail(ctx, "present@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	// Absence is not an error.
	user, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_ListFiltersByApproval(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	approved := createTestUser(t, db, "approved@example.com")

	pending := &models.User{
		FullName: "Pending User",
		Email:    "pending@example.com",
		Password: "hash",
		Role:     models.RoleUser,
		Approved: false,
	}
	require.NoError(t, db.Create(pending).Error)

	f := false
	users, err := repo.List(ctx, &f, 50, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, pending.ID, users[0].ID)

	tr := true
	users, err = repo.List(ctx, &tr, 50, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, approved.ID, users[0].ID)

	users, err = repo.List(ctx, nil, 50, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := repo.Count(ctx, &f)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "gone@example.com")

	require.NoError(t, repo.Delete(ctx, user.ID))

	fetched, err := repo.GetByEmail(ctx, "gone@example.com")
	require.NoError(t, err)
	assert.Nil(t, fetched)

	err = repo.Delete(ctx, user.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
