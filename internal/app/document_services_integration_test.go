//go:build integration
// +build integration

package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadTestDocument(t *testing.T, services *TestServices, userUID string) *documents.UploadReceipt {
	t.Helper()

	content := []byte("%PDF-1.4\nsome pdf content\n%%EOF")
	digest := sha256.Sum256(content)

	receipt, err := services.DocumentUploadService.Upload(context.Background(), &documents.UploadRequest{
		Title:    "report",
		Filename: "report.pdf",
		UserUID:  userUID,
		Checksum: hex.EncodeToString(digest[:]),
		Data:     content,
	})
	require.NoError(t, err)
	return receipt
}

func TestDocumentUploadService_Upload_Success(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	require.NotNil(t, receipt.Document)
	assert.NotEmpty(t, receipt.Document.ID)
	assert.Equal(t, "alice", receipt.Document.UserUID)
	assert.NotEmpty(t, receipt.TokenValue)
	assert.NotEmpty(t, receipt.Checks)

	// The owner was created implicitly.
	user, err := services.DBContext.UserRepo.GetByUID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UID)
}

func TestDocumentUploadService_Upload_ChecksumMismatch(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	req := &documents.UploadRequest{
		Title:    "report",
		Filename: "report.pdf",
		UserUID:  "alice",
		Checksum: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
		Data:     []byte("%PDF-1.4\ncontent\n%%EOF"),
	}

	_, err := services.DocumentUploadService.Upload(context.Background(), req)
	assert.ErrorIs(t, err, documents.ErrChecksumMismatch)

	// The failed deposition leaves nothing behind.
	list, err := services.DBContext.DocumentRepo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentUploadService_Upload_AdvisoryChecksDoNotBlock(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	// Not a PDF and not an accepted content type; the deposition still
	// goes through with failing checks in the report.
	content := []byte{0x00, 0x01, 0x02, 0x03}
	digest := sha256.Sum256(content)

	receipt, err := services.DocumentUploadService.Upload(context.Background(), &documents.UploadRequest{
		Title:    "binary",
		Filename: "blob.bin",
		UserUID:  "alice",
		Checksum: hex.EncodeToString(digest[:]),
		Data:     content,
	})
	require.NoError(t, err)
	assert.False(t, receipt.Checks.Passed())
}

func TestDocumentUploadService_Upload_MissingChecksum_Rejected(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	// A deposition without a client checksum never verifies.
	_, err := services.DocumentUploadService.Upload(context.Background(), &documents.UploadRequest{
		Title:    "report",
		Filename: "report.pdf",
		UserUID:  "alice",
		Data:     []byte("%PDF-1.4\ncontent\n%%EOF"),
	})
	assert.ErrorIs(t, err, documents.ErrChecksumMismatch)

	list, err := services.DBContext.DocumentRepo.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentRetrievalService_Fetch_RecordsAccess(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	document, data, err := services.DocumentRetrievalService.Fetch(context.Background(), receipt.TokenValue)
	require.NoError(t, err)
	assert.Equal(t, receipt.Document.ID, document.ID)
	assert.NotEmpty(t, data)

	info, err := services.TokenInfoService.InfoByValue(context.Background(), receipt.TokenValue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.AccessCount)
	require.NotNil(t, info.FirstAccess)
}

func TestDocumentRetrievalService_Fetch_UnknownToken(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	_, _, err := services.DocumentRetrievalService.Fetch(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)
}

func TestDocumentRetrievalService_Fetch_ExpiredToken(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	err := services.TokenService.UpdateValidUntil(context.Background(), receipt.TokenValue, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = services.DocumentRetrievalService.Fetch(context.Background(), receipt.TokenValue)
	assert.ErrorIs(t, err, tokens.ErrTokenExpired)
}

func TestDocumentMetadataService_DeleteByID_Cascades(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	err := services.DocumentMetadataService.DeleteByID(context.Background(), receipt.Document.ID)
	require.NoError(t, err)

	_, err = services.DocumentMetadataService.GetByID(context.Background(), receipt.Document.ID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)

	_, _, err = services.DocumentRetrievalService.Fetch(context.Background(), receipt.TokenValue)
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)

	_, err = services.DocumentStore.Open(context.Background(), receipt.Document.ID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)
}

func TestMaintenanceService_DeleteExpired(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	// Expire the only token of the document.
	err := services.TokenService.UpdateValidUntil(context.Background(), receipt.TokenValue, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	err = services.MaintenanceService.DeleteExpired(context.Background())
	require.NoError(t, err)

	// Token and the now tokenless document are gone, file included.
	_, err = services.DBContext.TokenRepo.GetByValue(context.Background(), receipt.TokenValue)
	assert.ErrorIs(t, err, tokens.ErrTokenNotFound)

	_, err = services.DocumentMetadataService.GetByID(context.Background(), receipt.Document.ID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)

	_, err = services.DocumentStore.Open(context.Background(), receipt.Document.ID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)
}

func TestMaintenanceService_DeleteExpired_KeepsDocumentsWithActiveTokens(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	// A second, still valid token keeps the document alive.
	_, err := services.TokenService.Issue(context.Background(), receipt.Document.ID)
	require.NoError(t, err)

	err = services.TokenService.UpdateValidUntil(context.Background(), receipt.TokenValue, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	err = services.MaintenanceService.DeleteExpired(context.Background())
	require.NoError(t, err)

	_, err = services.DocumentMetadataService.GetByID(context.Background(), receipt.Document.ID)
	assert.NoError(t, err)
}

func TestMaintenanceService_DeleteStale(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	// Age the document past the retention window.
	err := services.DBContext.DB.Exec(
		"UPDATE documents SET uploaded_at = ? WHERE id = ?",
		time.Now().Add(-72*time.Hour), receipt.Document.ID,
	).Error
	require.NoError(t, err)

	err = services.MaintenanceService.DeleteStale(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	_, err = services.DocumentMetadataService.GetByID(context.Background(), receipt.Document.ID)
	assert.ErrorIs(t, err, documents.ErrDocumentNotFound)
}

func TestMaintenanceService_DeleteStale_KeepsAccessedDocuments(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)

	receipt := uploadTestDocument(t, services, "alice")

	// The document was retrieved once, so it is not stale.
	_, _, err := services.DocumentRetrievalService.Fetch(context.Background(), receipt.TokenValue)
	require.NoError(t, err)

	err = services.DBContext.DB.Exec(
		"UPDATE documents SET uploaded_at = ? WHERE id = ?",
		time.Now().Add(-72*time.Hour), receipt.Document.ID,
	).Error
	require.NoError(t, err)

	err = services.MaintenanceService.DeleteStale(context.Background(), 24*time.Hour)
	require.NoError(t, err)

	_, err = services.DocumentMetadataService.GetByID(context.Background(), receipt.Document.ID)
	assert.NoError(t, err)
}
