package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WeatherCacheKey derives a stable cache key for a coordinate pair.
// Coordinates are rounded to 2 decimal places (~1.1km grid cell) so that
// nearby requests collapse onto a single cache entry.
func WeatherCacheKey(lat, lng float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lng)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
