package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 512, cfg.MaxDepth)
	assert.Equal(t, DefaultWorkersValue, cfg.Workers)
	assert.Equal(t, 16*1024*1024, cfg.MaxInputBytes)
	assert.Equal(t, 100_000, cfg.MaxRecords)
	assert.Equal(t, 128, cfg.SchemaCacheMaxItems)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROFILE_MAX_DEPTH", "0")
	t.Setenv("PROFILE_WORKERS", "8")
	t.Setenv("MAX_RECORDS", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()
	assert.Equal(t, 0, cfg.MaxDepth)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 10, cfg.MaxRecords)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_Clamps(t *testing.T) {
	t.Setenv("PROFILE_WORKERS", "-3")
	t.Setenv("SCHEMA_CACHE_MAX_ITEMS", "0")

	cfg := Load()
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, DefaultCacheMaxItemsValue, cfg.SchemaCacheMaxItems)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TP_BOOL", "maybe")
	t.Setenv("TP_INT", "twelve")
	t.Setenv("TP_YES", "yes")

	assert.True(t, getEnvBool("TP_BOOL", true))
	assert.True(t, getEnvBool("TP_YES", false))
	assert.Equal(t, 7, getEnvInt("TP_INT", 7))
	assert.Equal(t, "fallback", getEnvString("TP_MISSING", "fallback"))
}
