package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sylvanlabs/sylvan-server/internal/database"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
	"github.com/sylvanlabs/sylvan-server/internal/models"
	"gorm.io/gorm/clause"
)

// Client is a lookaside cache over the api_cache table. Every error on the
// cache path degrades to a miss (read) or a no-op (write) so that cache
// unavailability never fails the enclosing request.
type Client struct {
	db *database.DB
}

func New(db *database.DB) *Client {
	return &Client{db: db}
}

// Get unmarshals the cached value for key into out and reports whether a
// fresh entry was found. An entry past its expiry is a miss; the stale row
// is left in place until the next Set overwrites it.
func (c *Client) Get(ctx context.Context, key string, out interface{}) bool {
	var entry models.ApiCache
	if err := c.db.WithContext(ctx).Where("cache_key = ?", key).First(&entry).Error; err != nil {
		return false
	}

	return readEntry(&entry, time.Now(), out)
}

// readEntry decodes a fetched row. Expired rows and unreadable payloads are
// both misses.
func readEntry(entry *models.ApiCache, now time.Time, out interface{}) bool {
	log := logger.GetLogger("cache")

	if !fresh(entry, now) {
		log.Debugf("cache expired: %s", entry.CacheKey)
		return false
	}

	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		log.Warnf("cache entry for %s is unreadable, treating as miss: %v", entry.CacheKey, err)
		return false
	}

	return true
}

// Set upserts value under key with the given TTL. Last writer wins; there is
// no version check since all writers for a key recompute the same upstream
// value.
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	log := logger.GetLogger("cache")

	data, err := json.Marshal(value)
	if err != nil {
		log.Warnf("failed to marshal cache value for %s: %v", key, err)
		return
	}

	entry := models.ApiCache{
		CacheKey:  key,
		Value:     string(data),
		ExpiresAt: time.Now().Add(ttl),
	}

	err = c.db.WithContext(ctx).Clauses(upsertOnKey).Create(&entry).Error
	if err != nil {
		log.Warnf("failed to write cache entry %s: %v", key, err)
	}
}

// upsertOnKey makes Set last-writer-wins: a conflicting key overwrites the
// payload and pushes the expiry forward.
var upsertOnKey = clause.OnConflict{
	Columns:   []clause.Column{{Name: "cache_key"}},
	DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
}

// fresh reports whether the entry is still valid at the given instant.
func fresh(entry *models.ApiCache, now time.Time) bool {
	return now.Before(entry.ExpiresAt)
}
