package cache

import (
	"testing"
	"time"

	"github.com/sylvanlabs/sylvan-server/internal/models"
)

func TestFresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", now.Add(10 * time.Minute), true},
		{"past expiry", now.Add(-1 * time.Second), false},
		{"exactly at expiry", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &models.ApiCache{CacheKey: "weather:40.71:-74.01", ExpiresAt: tt.expiresAt}
			if got := fresh(entry, now); got != tt.want {
				t.Errorf("fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	type payload struct {
		Temperature float64 `json:"temperature"`
	}

	tests := []struct {
		name      string
		value     string
		expiresAt time.Time
		wantHit   bool
		wantTemp  float64
	}{
		{"fresh entry decodes", `{"temperature":21.5}`, now.Add(10 * time.Minute), true, 21.5},
		{"expired entry is a miss", `{"temperature":21.5}`, now.Add(-1 * time.Minute), false, 0},
		{"unreadable payload is a miss", `{"temperature":`, now.Add(10 * time.Minute), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &models.ApiCache{
				CacheKey:  "weather:40.71:-74.01",
				Value:     tt.value,
				ExpiresAt: tt.expiresAt,
			}

			var out payload
			if got := readEntry(entry, now, &out); got != tt.wantHit {
				t.Fatalf("readEntry() = %v, want %v", got, tt.wantHit)
			}
			if out.Temperature != tt.wantTemp {
				t.Errorf("decoded temperature = %v, want %v", out.Temperature, tt.wantTemp)
			}
		})
	}
}

func TestUpsertTargetsCacheKey(t *testing.T) {
	if len(upsertOnKey.Columns) != 1 || upsertOnKey.Columns[0].Name != "cache_key" {
		t.Fatalf("upsert conflict columns = %+v, want the cache key", upsertOnKey.Columns)
	}

	got := make(map[string]bool, len(upsertOnKey.DoUpdates))
	for _, assignment := range upsertOnKey.DoUpdates {
		got[assignment.Column.Name] = true
	}
	for _, col := range []string{"value", "expires_at"} {
		if !got[col] {
			t.Errorf("upsert does not overwrite %q on conflict", col)
		}
	}
	if len(got) != 2 {
		t.Errorf("upsert overwrites %d columns, want exactly value and expires_at", len(got))
	}
}
