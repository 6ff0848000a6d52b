package database

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// GridCacheEntryModel represents a cached key in the database
type GridCacheEntryModel struct {
	Key   string `gorm:"primaryKey;size:128"`
	Value string `gorm:"not null"`
	// nil means the entry never expires
	ExpiresAt *time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GridCacheEntryModel) TableName() string {
	return "grid_cache_entries"
}

func (m *GridCacheEntryModel) expired(now time.Time) bool {
	return m.ExpiresAt != nil && now.After(*m.ExpiresAt)
}

// GridCacheRepositoryAdapter implements the CacheProvider port using GORM
type GridCacheRepositoryAdapter struct {
	db     *gorm.DB
	now    func() time.Time
	hits   atomic.Int64
	misses atomic.Int64
}

// NewGridCacheRepositoryAdapter creates a new cache repository adapter
func NewGridCacheRepositoryAdapter(db *gorm.DB) *GridCacheRepositoryAdapter {
	return &GridCacheRepositoryAdapter{
		db:  db,
		now: time.Now,
	}
}

// Get retrieves a cached value by key
func (r *GridCacheRepositoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	var model GridCacheEntryModel
	result := r.db.WithContext(ctx).Where(&GridCacheEntryModel{Key: key}).First(&model)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.misses.Add(1)
			return nil, errors.NewNotFoundError("cache miss")
		}
		return nil, errors.NewDatabaseError("failed to read cache entry", result.Error)
	}

	if model.expired(r.now()) {
		r.misses.Add(1)
		return nil, errors.NewNotFoundError("cache miss")
	}

	r.hits.Add(1)
	return []byte(model.Value), nil
}

// Set upserts a value. A zero TTL stores it without expiry.
func (r *GridCacheRepositoryAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl < 0 {
		return errors.NewValidationError("cache TTL cannot be negative")
	}

	model := GridCacheEntryModel{Key: key, Value: string(value)}
	if ttl > 0 {
		expiresAt := r.now().Add(ttl)
		model.ExpiresAt = &expiresAt
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save cache entry", result.Error)
	}

	return nil
}

// Delete removes a cached value
func (r *GridCacheRepositoryAdapter) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	result := r.db.WithContext(ctx).Where(&GridCacheEntryModel{Key: key}).Delete(&GridCacheEntryModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete cache entry", result.Error)
	}

	return nil
}

// Exists reports whether an unexpired entry exists for key
func (r *GridCacheRepositoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	var count int64
	result := r.db.WithContext(ctx).Model(&GridCacheEntryModel{}).
		Where(&GridCacheEntryModel{Key: key}).
		Where("expires_at IS NULL OR expires_at > ?", r.now()).
		Count(&count)
	if result.Error != nil {
		return false, errors.NewDatabaseError("failed to check cache entry", result.Error)
	}

	return count > 0, nil
}

// Clear removes every cache entry
func (r *GridCacheRepositoryAdapter) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&GridCacheEntryModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to clear cache", result.Error)
	}

	return nil
}

// Ping checks the database connection
func (r *GridCacheRepositoryAdapter) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewDatabaseError("failed to get database handle", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewDatabaseError("database ping failed", err)
	}
	return nil
}

// GetStats returns cache statistics
func (r *GridCacheRepositoryAdapter) GetStats() ports.CacheStats {
	hits := r.hits.Load()
	misses := r.misses.Load()
	total := hits + misses

	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: r.now(),
	}
}

// RecordHit increments the cache hit counter
func (r *GridCacheRepositoryAdapter) RecordHit() {
	r.hits.Add(1)
}

// RecordMiss increments the cache miss counter
func (r *GridCacheRepositoryAdapter) RecordMiss() {
	r.misses.Add(1)
}

// Close releases the underlying connection pool
func (r *GridCacheRepositoryAdapter) Close() error {
	return Close(r.db)
}
