package models

import (
	"time"
)

// ApiCache represents a generic key/value cache row for upstream API
// responses. Reads past ExpiresAt are treated as misses; stale rows are
// never deleted, only overwritten by the next write for the same key.
type ApiCache struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CacheKey  string    `gorm:"size:500;not null;uniqueIndex" json:"cache_key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (ApiCache) TableName() string {
	return "api_cache"
}
