package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps collections in the kv_entries table of a SQL database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a KeyValueStore over db. The table must already be migrated.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get reads one entry
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StoreEntry
	err := s.db.WithContext(ctx).Where(&models.StoreEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts one entry
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := models.StoreEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Close closes the connection pool
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
