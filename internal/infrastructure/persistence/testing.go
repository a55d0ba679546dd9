//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
	"github.com/tna76874/docdepot/internal/infrastructure/persistence/models"
	"github.com/tna76874/docdepot/internal/pkg/config"
	"github.com/tna76874/docdepot/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	UserRepo        users.UserRepository
	DocumentRepo    documents.DocumentRepository
	TokenRepo       tokens.TokenRepository
	AccessEventRepo tokens.AccessEventRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = db.AutoMigrate(
		&models.UserModel{},
		&models.DocumentModel{},
		&models.TokenModel{},
		&models.AccessEventModel{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := testutil.SetupTestLogger(t)

	userRepo, err := NewGormUserRepository(db, logger)
	require.NoError(t, err, "Failed to create user repository")

	documentRepo, err := NewGormDocumentRepository(db, logger)
	require.NoError(t, err, "Failed to create document repository")

	tokenRepo, err := NewGormTokenRepository(db, logger)
	require.NoError(t, err, "Failed to create token repository")

	accessEventRepo, err := NewGormAccessEventRepository(db, logger)
	require.NoError(t, err, "Failed to create access event repository")

	return &TestContext{
		DB:              db,
		UserRepo:        userRepo,
		DocumentRepo:    documentRepo,
		TokenRepo:       tokenRepo,
		AccessEventRepo: accessEventRepo,
	}
}

// CreateTestDocument creates a test document with default values
func CreateTestDocument(t *testing.T, userUID, title string) *documents.Document {
	t.Helper()

	if title == "" {
		title = "test-document"
	}

	return &documents.Document{
		ID:         uuid.NewString(),
		Title:      title,
		Filename:   title + ".pdf",
		UserUID:    userUID,
		UploadedAt: time.Now(),
		ValidUntil: time.Now().Add(documents.DefaultValidity),
		Size:       1024,
	}
}

// CreateTestToken creates a test token for a document
func CreateTestToken(t *testing.T, documentID string, validUntil time.Time) *tokens.Token {
	t.Helper()

	return &tokens.Token{
		DocumentID: documentID,
		Value:      uuid.NewString(),
		CreatedAt:  time.Now(),
		ValidUntil: validUntil,
	}
}
