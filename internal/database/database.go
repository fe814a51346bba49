// Package database opens the record store used by the repositories.
package database

import (
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"time"

	"partshop/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	// DriverMemory keeps records in process memory without GORM.
	DriverMemory = "memory"
)

// Config selects the driver and connection string.
type Config struct {
	Driver        string
	DSN           string
	SlowThreshold time.Duration
}

// Open connects to the configured database. The caller owns the handle and
// must Close it on shutdown.
func Open(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite, "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	threshold := cfg.SlowThreshold
	if threshold == 0 {
		threshold = 200 * time.Millisecond
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlog.New(os.Stderr, "", stdlog.LstdFlags), gormlogger.Config{
			SlowThreshold:             threshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	log.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return backfillSearchFields(db)
}

const backfillBatchSize = 200

// backfillSearchFields fills the case-folded search columns of rows written
// before those columns existed.
func backfillSearchFields(db *gorm.DB) error {
	var categories []models.Category
	err := db.Where("search_text IS NULL OR search_text = ''").
		FindInBatches(&categories, backfillBatchSize, func(_ *gorm.DB, _ int) error {
			for i := range categories {
				categories[i].FoldSearchFields()
				if err := db.Model(&models.Category{}).Where("id = ?", categories[i].ID).
					UpdateColumn("search_text", categories[i].SearchText).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("failed to backfill category search text: %w", err)
	}

	var products []models.Product
	err = db.Where("search_text IS NULL OR search_text = ''").
		FindInBatches(&products, backfillBatchSize, func(_ *gorm.DB, _ int) error {
			for i := range products {
				products[i].FoldSearchFields()
				if err := db.Model(&models.Product{}).Where("id = ?", products[i].ID).
					UpdateColumns(map[string]any{
						"search_text": products[i].SearchText,
						"brand_key":   products[i].BrandKey,
					}).Error; err != nil {
					return err
				}
			}
			return nil
		}).Error
	if err != nil {
		return fmt.Errorf("failed to backfill product search text: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.Close()
}
