// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, storage, cache, and auth settings

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Storage contains article store configuration
	Storage StorageConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Auth contains editor authentication configuration
	Auth AuthConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// LogLevel is the minimum logged level (debug/info/warn/error)
	LogLevel string

	// RateLimit is the allowed requests per window per client IP
	RateLimit int

	// RateWindowSeconds is the rate limit window length
	RateWindowSeconds int
}

// StorageConfig holds article store configuration
type StorageConfig struct {
	// Path is the SQLite database file path
	Path string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int

	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int
}

// AuthConfig holds editor authentication configuration
type AuthConfig struct {
	// EditorToken is the shared secret gating the write path.
	// Empty leaves writes open (development mode).
	EditorToken string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvOrDefault("PORT", "8000"),
			LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
			RateLimit:         getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindowSeconds: getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60),
		},
		Storage: StorageConfig{
			Path: getEnvOrDefault("STORAGE_PATH", "updates.db"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 60),
				CleanupInterval:   getEnvAsIntOrDefault("MEMORY_CACHE_CLEANUP", 300),
			},
		},
		Auth: AuthConfig{
			EditorToken: getEnvOrDefault("EDITOR_TOKEN", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Storage.Path == "" {
		return errors.New("storage path cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Server.RateLimit < 0 || c.Server.RateWindowSeconds < 0 {
		return errors.New("rate limit settings cannot be negative")
	}

	return nil
}
