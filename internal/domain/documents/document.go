package documents

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultValidity is how long a freshly deposited document stays
// retrievable unless an explicit expiry is set later.
const DefaultValidity = 365 * 24 * time.Hour

// Document entity
type Document struct {
	ID         string    `validate:"required,uuid4"`
	Title      string    `validate:"required,min=1,max=255"`
	Filename   string    `validate:"required,min=1,max=255"`
	UserUID    string    `validate:"required,min=1,max=255"`
	UploadedAt time.Time `validate:"required"`
	ValidUntil time.Time `validate:"required"`
	Checksum   string    `validate:"omitempty,len=64,hexadecimal"`
	Size       int64     `validate:"required,min=1"`
}

// Validate for validating Document struct
func (d *Document) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// DocumentQuery for filtering and paginating document listings
type DocumentQuery struct {
	UserUID       string `validate:"omitempty,min=1,max=255"`
	UploadedAfter time.Time
	Limit         int    `validate:"omitempty,min=1,max=1000"`
	Offset        int    `validate:"omitempty,min=0"`
	SortBy        string `validate:"omitempty,oneof=uploaded_at title filename user_uid"`
	SortOrder     string `validate:"omitempty,oneof=asc desc"`
}

// NewDocumentQuery creates a DocumentQuery with defaults applied
func NewDocumentQuery() *DocumentQuery {
	return &DocumentQuery{
		Limit:     100,
		Offset:    0,
		SortBy:    "uploaded_at",
		SortOrder: "asc",
	}
}

// Validate for validating DocumentQuery struct
func (q *DocumentQuery) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for DocumentQuery: %w", err)
	}
	return nil
}
