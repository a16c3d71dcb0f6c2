// Package persistence implements the storage ports used by the session store.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/companion/internal/application/adapter"
	"github.com/finance-tracker/companion/internal/integration/persistence/model"
)

// sessionEntryRepository implements adapter.KeyValueStore on a SQL table.
type sessionEntryRepository struct {
	db *gorm.DB
}

// NewSessionEntryRepository creates a new gorm-backed key-value store.
func NewSessionEntryRepository(db *gorm.DB) adapter.KeyValueStore {
	return &sessionEntryRepository{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (r *sessionEntryRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry model.SessionEntryModel
	result := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return entry.Value, true, nil
}

// Set inserts the key or overwrites its value.
func (r *sessionEntryRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	entry := &model.SessionEntryModel{
		ID:        uuid.New(),
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry)
	return result.Error
}

// Delete removes the given keys.
func (r *sessionEntryRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Where("entry_key IN ?", keys).Delete(&model.SessionEntryModel{})
	return result.Error
}
