package models

import (
	"time"

	"github.com/tna76874/docdepot/internal/domain/documents"
)

// DocumentModel is the GORM database model for documents (infrastructure concern)
type DocumentModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Title      string    `gorm:"not null;type:varchar(255)"`
	Filename   string    `gorm:"not null;type:varchar(255)"`
	UserUID    string    `gorm:"not null;index;type:varchar(255)"`
	UploadedAt time.Time `gorm:"not null"`
	ValidUntil time.Time `gorm:"not null"`
	Checksum   string    `gorm:"type:varchar(64)"`
	Size       int64     `gorm:"not null"`

	User UserModel `gorm:"foreignKey:UserUID;references:UID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts GORM model to domain entity
func (m *DocumentModel) ToDomain() *documents.Document {
	return &documents.Document{
		ID:         m.ID,
		Title:      m.Title,
		Filename:   m.Filename,
		UserUID:    m.UserUID,
		UploadedAt: m.UploadedAt,
		ValidUntil: m.ValidUntil,
		Checksum:   m.Checksum,
		Size:       m.Size,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DocumentModel) FromDomain(d *documents.Document) {
	m.ID = d.ID
	m.Title = d.Title
	m.Filename = d.Filename
	m.UserUID = d.UserUID
	m.UploadedAt = d.UploadedAt
	m.ValidUntil = d.ValidUntil
	m.Checksum = d.Checksum
	m.Size = d.Size
}
