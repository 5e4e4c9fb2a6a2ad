package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	AIServiceURL     string
	AIServiceTimeout time.Duration
	AIRateLimitRPS   float64
	AIRateLimitBurst int
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8082"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/alert_clinique?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),

		AIServiceURL:     getEnv("AI_SERVICE_URL", "http://localhost:5000"),
		AIServiceTimeout: getDuration("AI_SERVICE_TIMEOUT", 5*time.Second),
		AIRateLimitRPS:   getFloat("AI_RATE_LIMIT_RPS", 5),
		AIRateLimitBurst: getInt("AI_RATE_LIMIT_BURST", 10),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
