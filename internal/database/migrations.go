package database

import (
	"fmt"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates or updates the key-value table.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Debug("Running database migrations")
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Debug("Database migrations completed")
	return nil
}
