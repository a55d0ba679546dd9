package models

import (
	"time"

	"github.com/tna76874/docdepot/internal/domain/users"
)

// UserModel is the GORM database model for users (infrastructure concern)
type UserModel struct {
	UID        string    `gorm:"primaryKey;type:varchar(255)"`
	ValidUntil time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		UID:        m.UID,
		ValidUntil: m.ValidUntil,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.UID = u.UID
	m.ValidUntil = u.ValidUntil
}
