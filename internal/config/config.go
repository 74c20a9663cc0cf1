package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// RedisURL switches session storage from in-memory to Redis when set.
	RedisURL   string
	SessionTTL time.Duration

	// DatabaseURL switches content loading from the embedded tree to
	// Postgres when set.
	DatabaseURL string

	// NormalizationPolicy controls Arabic answer matching: none,
	// diacritics or hamza.
	NormalizationPolicy string

	GoogleTTSAPIKey string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		RedisURL:            getEnv("REDIS_URL", ""),
		SessionTTL:          getDurationEnv("SESSION_TTL", 24*time.Hour),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		NormalizationPolicy: getEnv("NORMALIZATION_POLICY", "none"),
		GoogleTTSAPIKey:     getEnv("GOOGLE_TTS_API_KEY", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
