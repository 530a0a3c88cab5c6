package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Supported KV_BACKEND values.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSqlite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendBadger   = "badger"
)

type Config struct {
	Port      string
	PublicURL string

	KVBackend   string
	KVPath      string
	DatabaseURL string
	RedisAddr   string
	RedisPrefix string

	DefaultsURL     string
	DefaultsPath    string
	DefaultsRetries int

	LogLevel string
	LogFile  string

	// Static position reported by the locator; nil disables geolocation.
	LocateLat *float64
	LocateLng *float64
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	c := Config{
		Port:         Get("PORT", "8080"),
		PublicURL:    Get("PUBLIC_URL", "http://localhost:8080/"),
		KVBackend:    strings.ToLower(Get("KV_BACKEND", BackendSqlite)),
		KVPath:       Get("KV_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisAddr:    Get("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:  Get("REDIS_PREFIX", "respawn:"),
		DefaultsURL:  Get("DEFAULTS_URL", ""),
		DefaultsPath: Get("DEFAULTS_PATH", ""),
		LogLevel:     Get("LOG_LEVEL", "info"),
		LogFile:      Get("LOG_FILE", ""),
	}

	retries, err := strconv.Atoi(Get("DEFAULTS_RETRIES", "0"))
	if err != nil || retries < 0 {
		return Config{}, fmt.Errorf("load config: DEFAULTS_RETRIES must be a non-negative integer")
	}
	c.DefaultsRetries = retries

	switch c.KVBackend {
	case BackendMemory, BackendFile, BackendSqlite, BackendRedis, BackendBadger:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for the postgres backend")
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown KV_BACKEND %q", c.KVBackend)
	}

	lat, lng := Get("LOCATE_LAT", ""), Get("LOCATE_LNG", "")
	if lat != "" || lng != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		ln, errLng := strconv.ParseFloat(lng, 64)
		if errLat != nil || errLng != nil {
			return Config{}, fmt.Errorf("load config: LOCATE_LAT and LOCATE_LNG must both be numbers")
		}
		c.LocateLat, c.LocateLng = &la, &ln
	}

	return c, nil
}
