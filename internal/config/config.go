package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs, resolved once at startup.
// The JWT secret is deliberately injected here instead of living as a
// constant anywhere in the codebase.
type Config struct {
	Env                string
	HTTPAddr           string
	DBPath             string
	JWTSecret          string
	JWTExpiry          time.Duration
	AllowedOrigins     []string
	RedisAddr          string
	RateLimitPerMinute int
	OTLPEndpoint       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnv("ENV", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "./master.db"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiry:          getDurationEnv("JWT_EXPIRES_IN", 30*time.Minute),
		AllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MIN", 30),
		OTLPEndpoint:       getEnv("OTLP_ENDPOINT", ""),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev-only-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
