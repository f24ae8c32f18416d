package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

// KVStore is the terminal client's persisted key-value store: string keys to
// string values, one row per key in kv_entries.
type KVStore struct {
	DB *gorm.DB
}

// NewKVStore wraps an already migrated database.
func NewKVStore(db *gorm.DB) *KVStore { return &KVStore{DB: db} }

// Get returns the value stored under key. ok is false when the key is absent.
func (s *KVStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	var e domain.KVEntry
	err = s.DB.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	e := domain.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.DB.WithContext(ctx).Where("key = ?", key).Delete(&domain.KVEntry{}).Error
}
