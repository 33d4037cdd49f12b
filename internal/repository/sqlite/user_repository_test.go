package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-api/internal/domain"
	"auth-api/internal/repository"
)

func newTestRepository(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := &domain.User{
		Username:     "test",
		Name:         "test",
		PasswordHash: "hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.GetByUsername(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "test", byName.Name)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test", byID.Username)
}

func TestGetByUsernameMiss(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := &domain.User{Username: "test", Name: "test", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	second := &domain.User{Username: "test", Name: "other", PasswordHash: "hash2"}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, repository.ErrUserExists)

	// loser left no trace
	stored, err := repo.GetByUsername(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "test", stored.Name)
}

func TestUsernameIsCaseSensitive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "Test", Name: "a", PasswordHash: "h"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Username: "test", Name: "b", PasswordHash: "h"}))

	upper, err := repo.GetByUsername(ctx, "Test")
	require.NoError(t, err)
	assert.Equal(t, "a", upper.Name)
}
