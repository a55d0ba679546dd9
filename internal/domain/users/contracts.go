package users

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a user UID is unknown.
var ErrUserNotFound = errors.New("user not found")

// UserService defines the administrative user operations.
type UserService interface {
	// DeleteByUID removes a user together with all documents, tokens,
	// access events and stored files.
	DeleteByUID(ctx context.Context, uid string) error
	// Rename applies a mapping of old UID to new UID.
	Rename(ctx context.Context, mapping map[string]string) error
	// UpdateValidUntil moves the expiry date of one user.
	UpdateValidUntil(ctx context.Context, uid string, validUntil time.Time) error
	// UpdateAllValidUntil moves the expiry date of every user.
	UpdateAllValidUntil(ctx context.Context, validUntil time.Time) error
	// AverageTimeForAllUsers computes per user the mean span between
	// document upload and the first access event; users without any
	// events map to nil.
	AverageTimeForAllUsers(ctx context.Context) (map[string]*time.Duration, error)
	// List dumps every user.
	List(ctx context.Context) ([]*User, error)
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	// EnsureExists creates the user when missing; existing users are
	// left untouched.
	EnsureExists(ctx context.Context, uid string) error
	// GetByUID retrieves a User by UID
	GetByUID(ctx context.Context, uid string) (*User, error)
	// List dumps every User
	List(ctx context.Context) ([]*User, error)
	// DeleteByUID deletes a User by UID
	DeleteByUID(ctx context.Context, uid string) error
	// Rename changes a user's UID; documents keep referencing the user
	// through the updated foreign key.
	Rename(ctx context.Context, oldUID, newUID string) error
	// UpdateValidUntil moves the expiry date of one User
	UpdateValidUntil(ctx context.Context, uid string, validUntil time.Time) error
	// UpdateAllValidUntil moves the expiry date of every User
	UpdateAllValidUntil(ctx context.Context, validUntil time.Time) error
}
