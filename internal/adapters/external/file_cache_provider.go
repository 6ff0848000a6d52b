package external

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// FileCacheProvider persists a flat JSON object of string keys to string values.
// Every operation reloads the file, and writes replace it atomically through a temp file
// and rename. Separate processes sharing one file are not coordinated.
type FileCacheProvider struct {
	path  string
	mutex sync.Mutex
	stats cacheStats
}

// NewFileCacheProvider opens the cache file at path, creating an empty one if absent.
func NewFileCacheProvider(path string) (*FileCacheProvider, error) {
	if path == "" {
		return nil, errors.NewConfigurationError("cache file path cannot be empty", nil)
	}

	c := &FileCacheProvider{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.store(map[string]string{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.NewCacheError(fmt.Sprintf("failed to stat cache file %s", path), err)
	}

	if _, err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the backing file
func (c *FileCacheProvider) Path() string {
	return c.path
}

func (c *FileCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, err := c.load()
	if err != nil {
		return nil, err
	}

	value, ok := entries[key]
	if !ok {
		c.stats.recordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.stats.recordHit()
	return []byte(value), nil
}

// Set stores value under key. The file format has no expiry, so ttl must be zero.
func (c *FileCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl != 0 {
		return errors.NewValidationError("file cache entries cannot expire")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, err := c.load()
	if err != nil {
		return err
	}
	entries[key] = string(value)
	return c.store(entries)
}

func (c *FileCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, err := c.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return c.store(entries)
}

func (c *FileCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	entries, err := c.load()
	if err != nil {
		return false, err
	}
	_, ok := entries[key]
	return ok, nil
}

func (c *FileCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.store(map[string]string{})
}

func (c *FileCacheProvider) GetStats() ports.CacheStats {
	return c.stats.snapshot()
}

func (c *FileCacheProvider) RecordHit() {
	c.stats.recordHit()
}

func (c *FileCacheProvider) RecordMiss() {
	c.stats.recordMiss()
}

func (c *FileCacheProvider) load() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.NewCacheError(fmt.Sprintf("failed to read cache file %s", c.path), err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.NewCacheError(fmt.Sprintf("cache file %s is not a JSON object of strings", c.path), err)
	}
	return entries, nil
}

func (c *FileCacheProvider) store(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.NewCacheError("failed to encode cache", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return errors.NewCacheError(fmt.Sprintf("failed to create temp file in %s", dir), err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return errors.NewCacheError("failed to write cache", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewCacheError("failed to write cache", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return errors.NewCacheError(fmt.Sprintf("failed to replace cache file %s", c.path), err)
	}
	return nil
}
