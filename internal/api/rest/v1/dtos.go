package v1

import (
	"fmt"
	"time"

	"github.com/tna76874/docdepot/internal/domain/classify"
	"github.com/tna76874/docdepot/internal/domain/documents"
	"github.com/tna76874/docdepot/internal/domain/tokens"
	"github.com/tna76874/docdepot/internal/domain/users"
)

// datetimeLayout is the format used for datetime strings in request
// and response bodies.
const datetimeLayout = "2006-01-02 15:04:05"

// parseDatetime accepts both the wire layout and RFC 3339.
func parseDatetime(value string) (time.Time, error) {
	if t, err := time.Parse(datetimeLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q, expected %q or RFC 3339", value, datetimeLayout)
	}
	return t, nil
}

func formatDatetime(t time.Time) string {
	return t.Format(datetimeLayout)
}

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human readable success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// VersionResponse reports the client protocol version.
type VersionResponse struct {
	Version string `json:"version"`
}

// UploadDocumentResponse is the 201 body of a deposition.
type UploadDocumentResponse struct {
	DID    string          `json:"did"`
	Token  string          `json:"token"`
	Checks classify.Report `json:"checks"`
}

// IssueTokenRequest asks for a new token on an existing document.
type IssueTokenRequest struct {
	DID string `json:"did" binding:"required,uuid4"`
}

// TokenResponse carries a freshly issued token value.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateValidityRequest moves an expiry date.
type UpdateValidityRequest struct {
	ValidUntil string `json:"valid_until" binding:"required"`
}

// CheckValidityRequest asks for the validity of a batch of tokens.
type CheckValidityRequest struct {
	TokenList []string `json:"token_list" binding:"required"`
}

// CheckValidityResponse maps token values to their current validity.
type CheckValidityResponse struct {
	TokenValidity map[string]bool `json:"token_validity_dict"`
}

// RenameUsersRequest maps old UIDs to new UIDs.
type RenameUsersRequest struct {
	UserDict map[string]string `json:"user_dict" binding:"required"`
}

// UserResponse is one row of the administrative user dump.
type UserResponse struct {
	UID        string `json:"uid"`
	ValidUntil string `json:"valid_until"`
}

// NewUserResponse converts a domain user to its response form
func NewUserResponse(u *users.User) UserResponse {
	return UserResponse{
		UID:        u.UID,
		ValidUntil: formatDatetime(u.ValidUntil),
	}
}

// DocumentResponse is one row of the administrative document dump.
type DocumentResponse struct {
	DID            string `json:"did"`
	Title          string `json:"title"`
	Filename       string `json:"filename"`
	UserUID        string `json:"user_uid"`
	UploadDatetime string `json:"upload_datetime"`
	ValidUntil     string `json:"valid_until"`
	Checksum       string `json:"checksum,omitempty"`
	Size           int64  `json:"size"`
}

// NewDocumentResponse converts a domain document to its response form
func NewDocumentResponse(d *documents.Document) DocumentResponse {
	return DocumentResponse{
		DID:            d.ID,
		Title:          d.Title,
		Filename:       d.Filename,
		UserUID:        d.UserUID,
		UploadDatetime: formatDatetime(d.UploadedAt),
		ValidUntil:     formatDatetime(d.ValidUntil),
		Checksum:       d.Checksum,
		Size:           d.Size,
	}
}

// EventResponse is one row of the access event dump.
type EventResponse struct {
	EID  uint   `json:"eid"`
	TID  uint   `json:"tid"`
	Date string `json:"date"`
}

// NewEventResponse converts a domain access event to its response form
func NewEventResponse(e *tokens.AccessEvent) EventResponse {
	return EventResponse{
		EID:  e.ID,
		TID:  e.TokenID,
		Date: formatDatetime(e.OccurredAt),
	}
}
