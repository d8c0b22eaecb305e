package repository

import (
	"errors"
	"testing"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) UserRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewUserRepository(testDB)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupUserRepositoryTest(t)

	user := &model.User{Username: "testuser", PasswordHash: "hash", Email: "test@example.com"}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", byID.Username)

	byName, err := repo.FindByUsername("testuser")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := setupUserRepositoryTest(t)

	_, err := repo.FindByID(9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.FindByUsername("nobody")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := setupUserRepositoryTest(t)

	require.NoError(t, repo.Create(&model.User{Username: "testuser", PasswordHash: "hash", Email: "a@example.com"}))

	err := repo.Create(&model.User{Username: "testuser", PasswordHash: "hash", Email: "b@example.com"})
	assert.Error(t, err)
}
