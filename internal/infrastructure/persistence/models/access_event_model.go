package models

import (
	"time"

	"github.com/tna76874/docdepot/internal/domain/tokens"
)

// AccessEventModel is the GORM database model for access events (infrastructure concern)
type AccessEventModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	TokenID    uint      `gorm:"not null;index"`
	OccurredAt time.Time `gorm:"not null"`

	Token TokenModel `gorm:"foreignKey:TokenID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (AccessEventModel) TableName() string {
	return "access_events"
}

// ToDomain converts GORM model to domain entity
func (m *AccessEventModel) ToDomain() *tokens.AccessEvent {
	return &tokens.AccessEvent{
		ID:         m.ID,
		TokenID:    m.TokenID,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AccessEventModel) FromDomain(e *tokens.AccessEvent) {
	m.ID = e.ID
	m.TokenID = e.TokenID
	m.OccurredAt = e.OccurredAt
}
