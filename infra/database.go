// Package infra holds infrastructure wiring: database connections and the
// gorm-backed persistence layer.
package infra

import (
	"errors"
	"time"

	"finbook/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the postgres connection. TranslateError is on so
// constraint violations surface as gorm sentinel errors the repository
// layer can map to domain categories.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return db, nil
}
