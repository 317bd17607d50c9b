package config

import (
	"strconv"
	"strings"
	"time"
)

// ServerConfig holds everything the HTTP server needs from the
// environment.
type ServerConfig struct {
	Port       string
	RedisURI   string // empty means in-memory sessions
	JWTSecret  string
	SessionTTL time.Duration
}

// DefaultServerConfig reads the server configuration from the environment,
// falling back to development defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:       getEnvOrDefault("PORT", "8080"),
		RedisURI:   strings.TrimPrefix(getEnvOrDefault("REDIS_URI", ""), "redis://"),
		JWTSecret:  getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		SessionTTL: time.Duration(getEnvIntOrDefault("SESSION_TTL_MINUTES", 120)) * time.Minute,
	}
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := getEnvOrDefault(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if v := getEnvOrDefault(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
