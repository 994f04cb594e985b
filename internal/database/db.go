package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// Open connects to the configured database, sizes the connection pool and runs
// the schema migration. The returned handle is shared by every handler.
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector(cfg.DatabaseURL), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("database ready", "driver", db.Dialector.Name(), "max_open_conns", cfg.DBMaxOpenConns)
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func dialector(url string) gorm.Dialector {
	if strings.HasPrefix(url, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(url, sqlitePrefix))
	}
	return postgres.Open(url)
}
