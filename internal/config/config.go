package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration

	ListingCacheTTL time.Duration

	OTLPEndpoint string

	SeedSampleData bool
}

func Load() Config {
	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 5000),

		JWTSecret:  getEnv("JWT_SECRET", "dev-only-secret"),
		AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
		RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),

		AllowedOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RateLimit:      getEnvInt("RATE_LIMIT", 100),
		RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),

		ListingCacheTTL: getEnvDuration("LISTING_CACHE_TTL", 5*time.Second),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", true),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if num, err := strconv.Atoi(v); err == nil {
			return num
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
