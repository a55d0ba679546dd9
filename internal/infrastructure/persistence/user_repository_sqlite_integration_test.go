//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSqliteRepository_EnsureExists(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.UserRepo.EnsureExists(context.Background(), "alice")
	require.NoError(t, err)

	user, err := tc.UserRepo.GetByUID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UID)
	assert.True(t, user.ValidUntil.After(time.Now()))
}

func TestUserRepository_EnsureExists_KeepsExpiry(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))

	custom := time.Now().Add(2 * time.Hour)
	require.NoError(t, tc.UserRepo.UpdateValidUntil(context.Background(), "alice", custom))

	// A second ensure must not reset the expiry date.
	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))

	user, err := tc.UserRepo.GetByUID(context.Background(), "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, custom, user.ValidUntil, time.Second)
}

func TestUserRepository_GetByUID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.UserRepo.GetByUID(context.Background(), "ghost")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepository_DeleteByUID(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))

	err := tc.UserRepo.DeleteByUID(context.Background(), "alice")
	require.NoError(t, err)

	_, err = tc.UserRepo.GetByUID(context.Background(), "alice")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepository_DeleteByUID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.UserRepo.DeleteByUID(context.Background(), "ghost")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepository_Rename_MovesDocuments(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))
	document := CreateTestDocument(t, "alice", "report")
	require.NoError(t, tc.DocumentRepo.Create(context.Background(), document))

	err := tc.UserRepo.Rename(context.Background(), "alice", "alice2")
	require.NoError(t, err)

	_, err = tc.UserRepo.GetByUID(context.Background(), "alice")
	assert.ErrorIs(t, err, users.ErrUserNotFound)

	moved, err := tc.DocumentRepo.GetByID(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", moved.UserUID)
}

func TestUserRepository_Rename_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.UserRepo.Rename(context.Background(), "ghost", "ghost2")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepository_UpdateAllValidUntil(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))
	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "bob"))

	validUntil := time.Now().Add(24 * time.Hour)
	err := tc.UserRepo.UpdateAllValidUntil(context.Background(), validUntil)
	require.NoError(t, err)

	list, err := tc.UserRepo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, user := range list {
		assert.WithinDuration(t, validUntil, user.ValidUntil, time.Second)
	}
}
