// Package database provides the gorm-backed grid cache for sqlite and postgres.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"skywatch.app/pkg/errors"
)

// Dialect selects the SQL driver
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Open connects to the database. For sqlite the dsn is a file path.
func Open(dialect Dialect, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported database dialect: %s", dialect), nil)
	}

	// Cache misses are expected; keep gorm from logging them as errors.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("failed to connect to %s", dialect), err)
	}

	return db, nil
}

// RunMigrations executes database schema migrations
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&GridCacheEntryModel{}); err != nil {
		return errors.NewDatabaseError("failed to migrate grid cache schema", err)
	}
	return nil
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.NewDatabaseError("failed to get database handle", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.NewDatabaseError("failed to close database", err)
	}
	return nil
}
