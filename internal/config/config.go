package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string

	// Database
	DatabaseURL string

	// JWT
	JWTSecretKey              string
	JWTAccessTokenExpireMin   int
	JWTRefreshTokenExpireDays int

	// OpenAI (transcription, completion, speech synthesis)
	OpenAIAPIKey    string
	CompletionModel string

	// External API endpoints (overridable for testing/self-hosting)
	OpenMeteoBaseURL string
	OSRMBaseURL      string
	OverpassBaseURL  string

	// AllTrails via RapidAPI
	RapidAPIKey      string
	AllTrailsBaseURL string

	// Weather cache
	WeatherCacheTTLMin int

	// OTLP collector
	OTLPEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),

		// Database - DATABASE_URL wins, otherwise built from parts
		DatabaseURL: getDatabaseURL(),

		// JWT
		JWTSecretKey:              getEnv("JWT_SECRET_KEY", ""),
		JWTAccessTokenExpireMin:   getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 15),
		JWTRefreshTokenExpireDays: getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7),

		// OpenAI
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		CompletionModel: getEnv("COMPLETION_MODEL", "gpt-4o-mini"),

		// External APIs
		OpenMeteoBaseURL: getEnv("OPEN_METEO_BASE_URL", "https://api.open-meteo.com"),
		OSRMBaseURL:      getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
		OverpassBaseURL:  getEnv("OVERPASS_BASE_URL", "https://overpass-api.de/api/interpreter"),

		// AllTrails (RAPIDAPI_KEY is shared across RapidAPI products)
		RapidAPIKey:      getEnv("RAPIDAPI_KEY", ""),
		AllTrailsBaseURL: getEnv("ALLTRAILS_BASE_URL", "https://trailapi-trailapi.p.rapidapi.com"),

		// Weather cache
		WeatherCacheTTLMin: getEnvAsInt("WEATHER_CACHE_TTL_MINUTES", 30),

		// OTLP
		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "sylvan")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
