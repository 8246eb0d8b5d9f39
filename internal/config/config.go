// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/usestring/typeprofile-mcp/pkg/typeprofile"
)

// Profiling defaults
const (
	DefaultWorkersValue       = 4
	DefaultMaxInputBytesValue = 16 * 1024 * 1024
	DefaultMaxRecordsValue    = 100_000
	DefaultCacheMaxItemsValue = 128
)

// Config holds all configuration for the MCP server.
type Config struct {
	MaxDepth            int // PROFILE_MAX_DEPTH, default 512 (<= 0 disables the limit)
	Workers             int // PROFILE_WORKERS, default 4
	MaxInputBytes       int // MAX_INPUT_BYTES, default 16 MiB
	MaxRecords          int // MAX_RECORDS, default 100000
	SchemaCacheMaxItems int // SCHEMA_CACHE_MAX_ITEMS, default 128

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := &Config{
		MaxDepth:            getEnvInt("PROFILE_MAX_DEPTH", typeprofile.DefaultMaxDepth),
		Workers:             getEnvInt("PROFILE_WORKERS", DefaultWorkersValue),
		MaxInputBytes:       getEnvInt("MAX_INPUT_BYTES", DefaultMaxInputBytesValue),
		MaxRecords:          getEnvInt("MAX_RECORDS", DefaultMaxRecordsValue),
		SchemaCacheMaxItems: getEnvInt("SCHEMA_CACHE_MAX_ITEMS", DefaultCacheMaxItemsValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.SchemaCacheMaxItems < 1 {
		cfg.SchemaCacheMaxItems = DefaultCacheMaxItemsValue
	}
	return cfg
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
