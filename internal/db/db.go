// Package db opens the gorm database configured for the service and keeps its schema current.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/dsn"
	"github.com/brandalign/brandalign/internal/db/models"
	"github.com/brandalign/brandalign/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 500 * time.Millisecond

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.DevMode {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New(), gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Dialector picks the gorm driver for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.Create(cfg)), nil
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Setting{},
		&models.History{},
		&models.User{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
