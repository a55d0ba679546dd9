package tokens

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound is returned when a token value is unknown.
var ErrTokenNotFound = errors.New("token not found")

// ErrTokenExpired is returned when a token exists but its valid-until
// date has passed.
var ErrTokenExpired = errors.New("token expired")

// TokenService defines the administrative token operations.
type TokenService interface {
	// Issue creates a new token for a document and returns its value.
	Issue(ctx context.Context, documentID string) (string, error)
	// DeleteByValue removes a token and its access events.
	DeleteByValue(ctx context.Context, value string) error
	// UpdateValidUntil moves the expiry date of a token.
	UpdateValidUntil(ctx context.Context, value string, validUntil time.Time) error
	// CheckValidity reports validity per token value at the current time.
	CheckValidity(ctx context.Context, values []string) (map[string]bool, error)
}

// TokenInfo aggregates what the status page shows for one token.
type TokenInfo struct {
	AccessCount int64
	FirstAccess *time.Time
	// AverageTime is the mean span between upload and first access
	// over all documents of the token's owner; nil without events.
	AverageTime *time.Duration
}

// TokenInfoService computes access statistics for the status page.
type TokenInfoService interface {
	InfoByValue(ctx context.Context, value string) (*TokenInfo, error)
}

// AccessEventService exposes the raw access log for administrative
// dumps.
type AccessEventService interface {
	ListEvents(ctx context.Context) ([]*AccessEvent, error)
}

// TokenRepository defines the interface for Token-related operations
type TokenRepository interface {
	// Create adds a new Token to the database
	Create(ctx context.Context, token *Token) error
	// GetByValue retrieves a Token by its opaque value
	GetByValue(ctx context.Context, value string) (*Token, error)
	// ListByDocument retrieves all Tokens of a document
	ListByDocument(ctx context.Context, documentID string) ([]*Token, error)
	// DeleteByValue deletes a Token by its value
	DeleteByValue(ctx context.Context, value string) error
	// DeleteByDocument deletes all Tokens of a document
	DeleteByDocument(ctx context.Context, documentID string) error
	// UpdateValidUntil moves the expiry date of a Token
	UpdateValidUntil(ctx context.Context, value string, validUntil time.Time) error
	// ListExpired returns tokens whose valid-until date lies before now
	ListExpired(ctx context.Context, now time.Time) ([]*Token, error)
	// CountByDocument counts the remaining tokens of a document
	CountByDocument(ctx context.Context, documentID string) (int64, error)
}

// AccessEventRepository defines the interface for access tracking
type AccessEventRepository interface {
	// Record stores a new access event for a token
	Record(ctx context.Context, tokenID uint) error
	// CountByToken counts the access events of a token
	CountByToken(ctx context.Context, tokenID uint) (int64, error)
	// FirstByToken returns the time of the first access event of a
	// token, or nil when the token was never used
	FirstByToken(ctx context.Context, tokenID uint) (*time.Time, error)
	// EarliestForDocument returns the earliest access event over all
	// tokens of a document, or nil when none exists
	EarliestForDocument(ctx context.Context, documentID string) (*time.Time, error)
	// ListAll dumps every access event
	ListAll(ctx context.Context) ([]*AccessEvent, error)
	// DeleteByToken removes the access events of a token
	DeleteByToken(ctx context.Context, tokenID uint) error
}
