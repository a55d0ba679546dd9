//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDocumentWithUser(t *testing.T, tc *TestContext) string {
	t.Helper()

	require.NoError(t, tc.UserRepo.EnsureExists(context.Background(), "alice"))
	document := CreateTestDocument(t, "alice", "report")
	require.NoError(t, tc.DocumentRepo.Create(context.Background(), document))
	return document.ID
}

func TestTokenSqliteRepository_CreateAndGetByValue(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))

	err := tc.TokenRepo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.NotZero(t, token.ID, "create should backfill the numeric id")

	fetched, err := tc.TokenRepo.GetByValue(context.Background(), token.Value)
	require.NoError(t, err)
	assert.Equal(t, token.ID, fetched.ID)
	assert.Equal(t, documentID, fetched.DocumentID)
}

func TestTokenRepository_GetByValue_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.TokenRepo.GetByValue(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)
}

func TestTokenRepository_DeleteByValue(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))

	err := tc.TokenRepo.DeleteByValue(context.Background(), token.Value)
	require.NoError(t, err)

	_, err = tc.TokenRepo.GetByValue(context.Background(), token.Value)
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)
}

func TestTokenRepository_DeleteByValue_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.TokenRepo.DeleteByValue(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)
}

func TestTokenRepository_UpdateValidUntil(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))

	newValidUntil := time.Now().Add(48 * time.Hour)
	err := tc.TokenRepo.UpdateValidUntil(context.Background(), token.Value, newValidUntil)
	require.NoError(t, err)

	fetched, err := tc.TokenRepo.GetByValue(context.Background(), token.Value)
	require.NoError(t, err)
	assert.WithinDuration(t, newValidUntil, fetched.ValidUntil, time.Second)
}

func TestTokenRepository_ListExpired(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)

	expired := CreateTestToken(t, documentID, time.Now().Add(-time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), expired))

	active := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), active))

	list, err := tc.TokenRepo.ListExpired(context.Background(), time.Now())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, expired.Value, list[0].Value)
}

func TestTokenRepository_CountByDocument(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	for i := 0; i < 3; i++ {
		token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
		require.NoError(t, tc.TokenRepo.Create(context.Background(), token))
	}

	count, err := tc.TokenRepo.CountByDocument(context.Background(), documentID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTokenRepository_DeleteByDocument(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	for i := 0; i < 2; i++ {
		token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
		require.NoError(t, tc.TokenRepo.Create(context.Background(), token))
	}

	err := tc.TokenRepo.DeleteByDocument(context.Background(), documentID)
	require.NoError(t, err)

	count, err := tc.TokenRepo.CountByDocument(context.Background(), documentID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAccessEventRepository_RecordAndCount(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))

	require.NoError(t, tc.AccessEventRepo.Record(context.Background(), token.ID))
	require.NoError(t, tc.AccessEventRepo.Record(context.Background(), token.ID))

	count, err := tc.AccessEventRepo.CountByToken(context.Background(), token.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAccessEventRepository_FirstByToken_NeverAccessed(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))

	first, err := tc.AccessEventRepo.FirstByToken(context.Background(), token.ID)
	require.NoError(t, err)
	assert.Nil(t, first)
}

func TestAccessEventRepository_EarliestForDocument(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))

	earliest, err := tc.AccessEventRepo.EarliestForDocument(context.Background(), documentID)
	require.NoError(t, err)
	assert.Nil(t, earliest)

	require.NoError(t, tc.AccessEventRepo.Record(context.Background(), token.ID))

	earliest, err = tc.AccessEventRepo.EarliestForDocument(context.Background(), documentID)
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.WithinDuration(t, time.Now(), *earliest, 5*time.Second)
}

func TestAccessEventRepository_DeleteByToken(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	documentID := setupDocumentWithUser(t, tc)
	token := CreateTestToken(t, documentID, time.Now().Add(time.Hour))
	require.NoError(t, tc.TokenRepo.Create(context.Background(), token))
	require.NoError(t, tc.AccessEventRepo.Record(context.Background(), token.ID))

	err := tc.AccessEventRepo.DeleteByToken(context.Background(), token.ID)
	require.NoError(t, err)

	count, err := tc.AccessEventRepo.CountByToken(context.Background(), token.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
