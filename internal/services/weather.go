package services

import (
	"context"
	"time"

	"github.com/sylvanlabs/sylvan-server/internal/cache"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
	"github.com/sylvanlabs/sylvan-server/pkg/geo"
)

// WeatherService serves current conditions through a lookaside cache so
// that nearby requests within the TTL share one upstream call.
type WeatherService struct {
	provider clients.WeatherProvider
	cache    *cache.Client
	ttl      time.Duration
}

func NewWeatherService(provider clients.WeatherProvider, cacheClient *cache.Client, ttlMinutes int) *WeatherService {
	return &WeatherService{
		provider: provider,
		cache:    cacheClient,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
	}
}

// Get returns current conditions for the coordinate, from cache when a
// fresh entry exists. The second return reports a cache hit.
func (s *WeatherService) Get(ctx context.Context, lat, lng float64) (*clients.WeatherReport, bool, error) {
	log := logger.GetLogger("weather")

	key := geo.WeatherCacheKey(lat, lng)

	if s.cache != nil {
		var cached clients.WeatherReport
		if s.cache.Get(ctx, key, &cached) {
			log.Infof("cache hit: %s", key)
			return &cached, true, nil
		}
	}

	report, err := s.provider.CurrentWeather(ctx, lat, lng)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, report, s.ttl)
	}

	return report, false, nil
}
