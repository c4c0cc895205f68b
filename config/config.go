package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port              string
	Environment       string
	AllowedOrigins    []string
	TrustProxy        bool
	KeepaliveInterval time.Duration
	IdentitySecret    string
	IdentityTTL       time.Duration
	NameStrategy      string
	Redis             RedisConfig
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

func Load() *Config {
	// Parse allowed origins (comma-separated)
	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	origins := strings.Split(originsStr, ",")

	// Presence mirroring is on iff a Redis host is configured.
	redisHost := getEnv("REDIS_HOST", "")

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:    origins,
		TrustProxy:        getBool("TRUST_PROXY", false),
		KeepaliveInterval: getDuration("KEEPALIVE_INTERVAL", 30*time.Second),
		IdentitySecret:    getEnv("IDENTITY_SECRET", "change-me-in-production"),
		IdentityTTL:       getDuration("IDENTITY_TTL", 30*24*time.Hour),
		NameStrategy:      getEnv("NAME_STRATEGY", "deterministic"),
		Redis: RedisConfig{
			Enabled:  redisHost != "",
			Host:     redisHost,
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
