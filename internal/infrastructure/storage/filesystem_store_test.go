//go:build unit
// +build unit

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) documents.DocumentStore {
	t.Helper()

	store, err := NewFilesystemStore(filepath.Join(t.TempDir(), "documents"), testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return store
}

func TestFilesystemStore_SaveAndOpen(t *testing.T) {
	store := setupStore(t)
	documentID := uuid.NewString()
	content := []byte("deposited content")

	err := store.Save(context.Background(), documentID, content)
	require.NoError(t, err)

	read, err := store.Open(context.Background(), documentID)
	require.NoError(t, err)
	assert.Equal(t, content, read)
}

func TestFilesystemStore_Open_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Open(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)
}

func TestFilesystemStore_Checksum(t *testing.T) {
	store := setupStore(t)
	documentID := uuid.NewString()
	content := []byte("checksummed content")

	require.NoError(t, store.Save(context.Background(), documentID, content))

	digest := sha256.Sum256(content)
	expected := hex.EncodeToString(digest[:])

	checksum, err := store.Checksum(context.Background(), documentID)
	require.NoError(t, err)
	assert.Equal(t, expected, checksum)
}

func TestFilesystemStore_Delete(t *testing.T) {
	store := setupStore(t)
	documentID := uuid.NewString()

	require.NoError(t, store.Save(context.Background(), documentID, []byte("gone soon")))
	require.NoError(t, store.Delete(context.Background(), documentID))

	_, err := store.Open(context.Background(), documentID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)
}

func TestFilesystemStore_Delete_MissingFile(t *testing.T) {
	store := setupStore(t)

	// Deleting a file that never existed is not an error.
	err := store.Delete(context.Background(), uuid.NewString())
	assert.NoError(t, err)
}
