package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the identifier and timestamps shared by teams, drivers,
// rentals and assignments. Identifiers are lowercase UUID strings so that
// rental and assignment references compare byte for byte.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// BeforeCreate assigns an identifier to new rows and normalises one supplied
// by the caller.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	m.ID = strings.ToLower(strings.TrimSpace(m.ID))
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}
