package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultValidity is the lifetime of a newly issued token.
const DefaultValidity = 365 * 24 * time.Hour

// Token entity granting time-limited access to one document.
type Token struct {
	ID         uint      `validate:"omitempty"`
	DocumentID string    `validate:"required,uuid4"`
	Value      string    `validate:"required,uuid4"`
	CreatedAt  time.Time `validate:"required"`
	ValidUntil time.Time `validate:"required"`
}

// Validate for validating Token struct
func (t *Token) Validate() error {
	validate := validator.New()

	err := validate.Struct(t)
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

// IsValidAt reports whether the token grants access at the given
// instant. Expiry is inclusive of the valid-until timestamp.
func (t *Token) IsValidAt(now time.Time) bool {
	return !t.ValidUntil.Before(now)
}

// AccessEvent records one retrieval of a document through a token.
type AccessEvent struct {
	ID         uint
	TokenID    uint      `validate:"required"`
	OccurredAt time.Time `validate:"required"`
}
