//go:build integration
// +build integration

package app

import (
	"path/filepath"
	"testing"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	infraclassify "github.com/tna76874/docdepot/internal/infrastructure/classify"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence"
	"github.com/tna76874/docdepot/internal/infrastructure/storage"
	"github.com/tna76874/docdepot/internal/pkg/config"
	"github.com/tna76874/docdepot/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	DocumentUploadService    documents.DocumentUploadService
	DocumentRetrievalService documents.DocumentRetrievalService
	DocumentMetadataService  documents.DocumentMetadataService
	MaintenanceService       documents.MaintenanceService
	TokenService             tokens.TokenService
	TokenInfoService         tokens.TokenInfoService
	AccessEventService       tokens.AccessEventService
	UserService              users.UserService

	DocumentStore documents.DocumentStore
	DBContext     *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	// Setup database
	dbContext := persistence.SetupTestDB(t, dbType)

	// Setup document store
	documentStore, err := storage.NewFilesystemStore(filepath.Join(t.TempDir(), "documents"), logger)
	require.NoError(t, err, "Failed to create document store")

	// Setup validation pipeline with the remote classifier disabled
	uploadSettings := &config.UploadSettings{
		DocumentDir:          "unused",
		MaxSizeBytes:         32 << 20,
		AcceptedContentTypes: []string{"application/pdf", "image/png", "image/jpeg", "text/plain; charset=utf-8"},
		MinImageEdge:         10,
	}
	classifierSettings := &config.ClassifierSettings{
		Enabled:        false,
		Threshold:      0.55,
		TimeoutSeconds: 1,
	}
	pipeline := infraclassify.NewDefaultPipeline(uploadSettings, classifierSettings, logger)

	// Initialize services
	tokenService, err := NewTokenService(dbContext.TokenRepo, dbContext.DocumentRepo, dbContext.AccessEventRepo, logger)
	require.NoError(t, err, "Failed to create TokenService")

	tokenInfoService, err := NewTokenInfoService(dbContext.TokenRepo, dbContext.DocumentRepo, dbContext.AccessEventRepo, logger)
	require.NoError(t, err, "Failed to create TokenInfoService")

	accessEventService, err := NewAccessEventService(dbContext.AccessEventRepo, logger)
	require.NoError(t, err, "Failed to create AccessEventService")

	documentUploadService, err := NewDocumentUploadService(
		dbContext.UserRepo,
		dbContext.DocumentRepo,
		documentStore,
		tokenService,
		pipeline,
		logger,
	)
	require.NoError(t, err, "Failed to create DocumentUploadService")

	documentRetrievalService, err := NewDocumentRetrievalService(
		dbContext.DocumentRepo,
		documentStore,
		dbContext.TokenRepo,
		dbContext.AccessEventRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create DocumentRetrievalService")

	documentMetadataService, err := NewDocumentMetadataService(
		dbContext.DocumentRepo,
		documentStore,
		dbContext.TokenRepo,
		dbContext.AccessEventRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create DocumentMetadataService")

	maintenanceService, err := NewMaintenanceService(
		dbContext.DocumentRepo,
		documentStore,
		dbContext.TokenRepo,
		dbContext.AccessEventRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create MaintenanceService")

	userService, err := NewUserService(
		dbContext.UserRepo,
		dbContext.DocumentRepo,
		documentStore,
		dbContext.TokenRepo,
		dbContext.AccessEventRepo,
		logger,
	)
	require.NoError(t, err, "Failed to create UserService")

	return &TestServices{
		DocumentUploadService:    documentUploadService,
		DocumentRetrievalService: documentRetrievalService,
		DocumentMetadataService:  documentMetadataService,
		MaintenanceService:       maintenanceService,
		TokenService:             tokenService,
		TokenInfoService:         tokenInfoService,
		AccessEventService:       accessEventService,
		UserService:              userService,
		DocumentStore:            documentStore,
		DBContext:                dbContext,
	}
}
