package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("RATE_LIMIT_INTERVAL", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("CACHE_DIR", "")
	t.Setenv("SITE_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, filepath.Join(".", "cache"), cfg.CacheDir)
	assert.Equal(t, filepath.Join(".", "_site"), cfg.SiteDir)
	assert.Equal(t, "json", cfg.StorageType)
	assert.Equal(t, DefaultRateLimitInterval, cfg.RateLimit)
	assert.False(t, cfg.Production)
	assert.Zero(t, cfg.Now.Nanosecond())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATA_DIR", "/data")
	t.Setenv("CACHE_DIR", "")
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("RATE_LIMIT_INTERVAL", "0s")
	t.Setenv("STORAGE_TYPE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "cache"), cfg.CacheDir)
	assert.True(t, cfg.Production)
	assert.Equal(t, time.Duration(0), cfg.RateLimit)
	assert.Equal(t, "sqlite", cfg.StorageType)
}

func TestSetDataDir_UsesOverridesCapturedByLoad(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("CACHE_DIR", "/var/cache/course")
	t.Setenv("SITE_DIR", "")
	t.Setenv("README_PATH", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	// Environment changes after Load have no effect
	t.Setenv("CACHE_DIR", "/elsewhere")
	t.Setenv("SITE_DIR", "/elsewhere/site")
	cfg.SetDataDir("/course")

	assert.Equal(t, "/var/cache/course", cfg.CacheDir)
	assert.Equal(t, filepath.Join("/var/cache/course", "cache.db"), cfg.SQLitePath)
	assert.Equal(t, filepath.Join("/course", "_site"), cfg.SiteDir)
	assert.Equal(t, filepath.Join("/course", "README.md"), cfg.ReadmePath)
}

func TestSetDataDir_DerivesPaths(t *testing.T) {
	t.Setenv("SITE_DIR", "/ignored")

	cfg := &Config{}
	cfg.SetDataDir("/course")

	assert.Equal(t, filepath.Join("/course", "cache"), cfg.CacheDir)
	assert.Equal(t, filepath.Join("/course", "_site"), cfg.SiteDir)
	assert.Equal(t, filepath.Join("/course", "cache", "cache.db"), cfg.SQLitePath)
}

func TestLoad_InvalidInterval(t *testing.T) {
	t.Setenv("RATE_LIMIT_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "RATE_LIMIT_INTERVAL", cfgErr.Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"unknown storage", Config{DataDir: ".", StorageType: "redis"}, "STORAGE_TYPE"},
		{"postgres without url", Config{DataDir: ".", StorageType: "postgres"}, "POSTGRES_URL"},
		{"negative interval", Config{DataDir: ".", StorageType: "json", RateLimit: -time.Second}, "RATE_LIMIT_INTERVAL"},
		{"missing data dir", Config{StorageType: "json"}, "DATA_DIR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
