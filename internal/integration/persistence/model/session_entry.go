// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionEntryModel represents one persisted session key.
type SessionEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"column:entry_key;type:varchar(64);not null;uniqueIndex"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the SessionEntryModel.
func (SessionEntryModel) TableName() string {
	return "session_entries"
}
