// Package db opens the database and keeps its schema up to date
package db

import (
	"fmt"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Opts struct {
	Driver   string
	DSN      string
	LogLevel string
}

func New(opts Opts) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch opts.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(opts.DSN)
	case "postgres":
		dialector = postgres.Open(opts.DSN)
	case "mysql":
		dialector = mysql.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(200*time.Millisecond, parseLogLevel(opts.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", opts.Driver, err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access SQLite connection pool, %w", err)
		}

		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return nil
}

func parseLogLevel(l string) logger.LogLevel {
	switch l {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
