// Package cache implements the TTL response cache using BadgerHold.
// Entries persist across restarts; expired entries remain readable via
// GetStale for rate-limit degradation.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/portfolai/portfolai/internal/common"
)

// entry is a stored cache record. Value holds the JSON-encoded payload so a
// single store serves all response shapes.
type entry struct {
	Key       string    `badgerhold:"key"`
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache implements interfaces.ResponseCache using BadgerHold.
type Cache struct {
	db     *badgerhold.Store
	logger *common.Logger
	now    func() time.Time
}

// New opens a cache store at path.
func New(logger *common.Logger, path string) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Response cache opened")
	return &Cache{db: db, logger: logger, now: time.Now}, nil
}

// Get returns the entry for key if present and unexpired.
func (c *Cache) Get(key string, out any) (bool, error) {
	e, ok, err := c.load(key)
	if err != nil || !ok {
		return false, err
	}
	if c.now().After(e.ExpiresAt) {
		return false, nil
	}
	return true, json.Unmarshal(e.Value, out)
}

// GetStale returns the entry for key regardless of expiry.
func (c *Cache) GetStale(key string, out any) (bool, error) {
	e, ok, err := c.load(key)
	if err != nil || !ok {
		return false, err
	}
	return true, json.Unmarshal(e.Value, out)
}

// Set stores value under key with the given TTL. Writes are last-writer-wins.
func (c *Cache) Set(key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value for '%s': %w", key, err)
	}
	e := entry{
		Key:       key,
		Value:     data,
		ExpiresAt: c.now().Add(ttl),
	}
	if err := c.db.Upsert(key, &e); err != nil {
		return fmt.Errorf("failed to store cache entry '%s': %w", key, err)
	}
	c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cache entry stored")
	return nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) load(key string) (*entry, bool, error) {
	var e entry
	if err := c.db.Get(key, &e); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache entry '%s': %w", key, err)
	}
	return &e, true, nil
}
