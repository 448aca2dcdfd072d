package db

import (
	"fmt"

	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.StoredRecord{},
		&models.StoreInfo{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedStoreInfo upserts the StoreInfo row for the configured store key.
func SeedStoreInfo(db *gorm.DB, cfg *config.Config) error {
	info := models.StoreInfo{
		Key:        cfg.StoreKey,
		Layout:     cfg.Layout,
		Comparison: cfg.Comparison,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"layout", "comparison", "updated_at"}),
	}).Create(&info)
	if result.Error != nil {
		return fmt.Errorf("db: seed store info for %q: %w", cfg.StoreKey, result.Error)
	}
	return nil
}

// Open connects using cfg, migrates, and seeds the store info row.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}
	if err := SeedStoreInfo(gdb, cfg); err != nil {
		return nil, err
	}
	return gdb, nil
}
