package documents

import (
	"context"
	"errors"
	"time"

	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/domain/tokens"
)

// ErrChecksumMismatch is returned when the checksum sent by the client
// does not match the stored file.
var ErrChecksumMismatch = errors.New("checksum verification failed")

// ErrDocumentNotFound is returned when a document cannot be resolved.
var ErrDocumentNotFound = errors.New("document not found")

// UploadRequest carries the multipart fields of a deposition.
type UploadRequest struct {
	Title    string
	Filename string
	UserUID  string
	// Checksum is the sha256 hex digest computed by the client.
	// When empty, verification is skipped.
	Checksum string
	Data     []byte
}

// UploadReceipt is the outcome of a deposition: the persisted document,
// its first access token and the full validation report.
type UploadReceipt struct {
	Document   *Document
	TokenValue string
	Checks     classify.Report
}

// DocumentUploadService defines methods for depositing documents.
type DocumentUploadService interface {
	// Upload validates, stores and registers a document and issues its
	// first access token. The validation report is advisory; only a
	// checksum mismatch rejects the deposition.
	Upload(ctx context.Context, req *UploadRequest) (*UploadReceipt, error)
}

// DocumentRetrievalService defines the tokenized read path.
type DocumentRetrievalService interface {
	// Resolve maps a token value to its document without touching the
	// stored file. Returns tokens.ErrTokenNotFound for unknown tokens.
	Resolve(ctx context.Context, tokenValue string) (*Document, *tokens.Token, error)

	// Fetch serves the document behind a valid token and records an
	// access event. Returns tokens.ErrTokenExpired past the token's
	// valid-until date.
	Fetch(ctx context.Context, tokenValue string) (*Document, []byte, error)
}

// DocumentMetadataService defines methods for administrative listings
// and deletions.
type DocumentMetadataService interface {
	List(ctx context.Context, query *DocumentQuery) ([]*Document, error)
	GetByID(ctx context.Context, documentID string) (*Document, error)
	// DeleteByID removes the document, its tokens, their access events
	// and the stored file.
	DeleteByID(ctx context.Context, documentID string) error
}

// MaintenanceService defines the cleanup operations run at startup or
// from an operator action.
type MaintenanceService interface {
	// DeleteExpired drops expired tokens and afterwards every document
	// left without tokens, including its stored file.
	DeleteExpired(ctx context.Context) error
	// DeleteStale drops documents that have not seen a single access
	// event within the retention window after upload.
	DeleteStale(ctx context.Context, retention time.Duration) error
}

// DocumentRepository defines the interface for Document-related operations
type DocumentRepository interface {
	// Create adds a new Document to the database
	Create(ctx context.Context, document *Document) error
	// List lists Documents in the database with optional filter
	List(ctx context.Context, query *DocumentQuery) ([]*Document, error)
	// GetByID retrieves a Document from the database by ID
	GetByID(ctx context.Context, documentID string) (*Document, error)
	// ListByUser retrieves all Documents owned by a user
	ListByUser(ctx context.Context, userUID string) ([]*Document, error)
	// DeleteByID deletes a Document in the database by ID
	DeleteByID(ctx context.Context, documentID string) error
	// ListStaleWithoutAccess returns documents uploaded before the
	// cutoff whose tokens have never recorded an access event.
	ListStaleWithoutAccess(ctx context.Context, cutoff time.Time) ([]*Document, error)
}

// DocumentStore is an interface for the byte storage behind documents.
// Files are keyed by document ID.
type DocumentStore interface {
	// Save persists the file content for a document ID.
	Save(ctx context.Context, documentID string, data []byte) error

	// Open retrieves the stored content of a document by ID.
	Open(ctx context.Context, documentID string) ([]byte, error)

	// Delete removes the stored content of a document by ID. Missing
	// files are not an error.
	Delete(ctx context.Context, documentID string) error

	// Checksum returns the sha256 hex digest of the stored content.
	Checksum(ctx context.Context, documentID string) (string, error)
}
