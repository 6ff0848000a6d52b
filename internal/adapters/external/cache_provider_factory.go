package external

import (
	"fmt"

	"skywatch.app/internal/adapters/database"
	"skywatch.app/internal/config"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// GridCache is a cache backend that also tracks its hit and miss counts.
type GridCache interface {
	ports.CacheProvider
	ports.CacheMetrics
}

type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

// CreateCacheProvider builds the backend selected by cfg.Type. Backends holding
// connections implement io.Closer.
func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (GridCache, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeFile:
		return NewFileCacheProvider(cfg.FilePath)
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		return NewRedisCacheProviderAdapter(&cfg.Redis)
	case config.CacheTypeSQLite:
		return f.createDatabaseCache(database.DialectSQLite, cfg.SQLitePath)
	case config.CacheTypePostgres:
		return f.createDatabaseCache(database.DialectPostgres, cfg.PostgresDSN)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}

func (f *CacheProviderFactory) createDatabaseCache(dialect database.Dialect, dsn string) (GridCache, error) {
	db, err := database.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return database.NewGridCacheRepositoryAdapter(db), nil
}
