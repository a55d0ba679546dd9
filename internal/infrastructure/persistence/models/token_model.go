package models

import (
	"time"

	"github.com/tna76874/docdepot/internal/domain/tokens"
)

// TokenModel is the GORM database model for access tokens (infrastructure concern)
type TokenModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DocumentID string    `gorm:"not null;index;type:uuid"`
	Value      string    `gorm:"not null;uniqueIndex;type:uuid"`
	CreatedAt  time.Time `gorm:"not null"`
	ValidUntil time.Time `gorm:"not null;index"`

	Document DocumentModel `gorm:"foreignKey:DocumentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (TokenModel) TableName() string {
	return "tokens"
}

// ToDomain converts GORM model to domain entity
func (m *TokenModel) ToDomain() *tokens.Token {
	return &tokens.Token{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		Value:      m.Value,
		CreatedAt:  m.CreatedAt,
		ValidUntil: m.ValidUntil,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TokenModel) FromDomain(t *tokens.Token) {
	m.ID = t.ID
	m.DocumentID = t.DocumentID
	m.Value = t.Value
	m.CreatedAt = t.CreatedAt
	m.ValidUntil = t.ValidUntil
}
