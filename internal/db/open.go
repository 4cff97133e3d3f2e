// Package db opens the settings store database with the configured gorm engine.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spoolkeeper/spoolkeeper/internal/config"
	"github.com/spoolkeeper/spoolkeeper/internal/db/dsn"
	"github.com/spoolkeeper/spoolkeeper/internal/db/models"
	"github.com/spoolkeeper/spoolkeeper/internal/logger/adapter/gormlogger"
)

// ErrUnknownEngine is returned when the configured gorm engine is not supported.
var ErrUnknownEngine = errors.New("unknown gorm engine")

// Open connects to the database selected by cfg.DB.GormEngine and
// migrates the tables the tool needs.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.New()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.Setting{},
		&models.SchemaMigration{},
	); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
