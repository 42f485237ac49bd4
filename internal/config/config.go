package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRateLimitInterval is the pause between two uncached external calls
const DefaultRateLimitInterval = 200 * time.Millisecond

// Config holds the settings of a single generator run
type Config struct {
	// GitHub
	GitHubToken  string
	GitHubAPIURL string // empty means api.github.com
	GitHubWebURL string
	ForemBaseURL string
	RateLimit    time.Duration
	Production   bool // set when running under GitHub Actions

	// Paths
	DataDir      string
	CacheDir     string
	SiteDir      string
	TemplatesDir string // empty means the embedded templates
	ReadmePath   string

	// Storage
	StorageType string // "json", "sqlite" or "postgres"
	SQLitePath  string
	PostgresURL string

	// Preview server
	APIPort string
	APIHost string

	// Now is the run timestamp, captured once
	Now time.Time

	// explicit path settings read by Load; empty means derived from DataDir
	overrides pathOverrides
}

type pathOverrides struct {
	cacheDir   string
	siteDir    string
	readmePath string
	sqlitePath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", ".")
	rateLimit := DefaultRateLimitInterval
	if raw := os.Getenv("RATE_LIMIT_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &ConfigError{Field: "RATE_LIMIT_INTERVAL", Message: err.Error()}
		}
		rateLimit = d
	}

	cfg := &Config{
		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL: getEnv("GITHUB_API_URL", ""),
		GitHubWebURL: getEnv("GITHUB_WEB_URL", "https://github.com"),
		ForemBaseURL: getEnv("FOREM_BASE_URL", "https://dev.to"),
		RateLimit:    rateLimit,
		Production:   os.Getenv("GITHUB_ACTIONS") != "",
		TemplatesDir: getEnv("TEMPLATES_DIR", ""),
		StorageType:  getEnv("STORAGE_TYPE", "json"),
		PostgresURL:  getEnv("POSTGRES_URL", ""),
		APIPort:      getEnv("API_PORT", "8080"),
		APIHost:      getEnv("API_HOST", "localhost"),
		Now:          time.Now().UTC().Truncate(time.Second),
		overrides: pathOverrides{
			cacheDir:   os.Getenv("CACHE_DIR"),
			siteDir:    os.Getenv("SITE_DIR"),
			readmePath: os.Getenv("README_PATH"),
			sqlitePath: os.Getenv("SQLITE_PATH"),
		},
	}
	cfg.SetDataDir(dataDir)
	return cfg, nil
}

// SetDataDir points the config at a data directory. Paths that were not
// set explicitly when the config was loaded are derived from it.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.CacheDir = orDefault(c.overrides.cacheDir, filepath.Join(dir, "cache"))
	c.SiteDir = orDefault(c.overrides.siteDir, filepath.Join(dir, "_site"))
	c.ReadmePath = orDefault(c.overrides.readmePath, filepath.Join(dir, "README.md"))
	c.SQLitePath = orDefault(c.overrides.sqlitePath, filepath.Join(c.CacheDir, "cache.db"))
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	return orDefault(os.Getenv(key), defaultValue)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return &ConfigError{Field: "DATA_DIR", Message: "data directory is required"}
	}
	if c.StorageType != "json" && c.StorageType != "sqlite" && c.StorageType != "postgres" {
		return &ConfigError{Field: "STORAGE_TYPE", Message: "must be 'json', 'sqlite' or 'postgres'"}
	}
	if c.StorageType == "postgres" && c.PostgresURL == "" {
		return &ConfigError{Field: "POSTGRES_URL", Message: "PostgreSQL URL is required when STORAGE_TYPE is 'postgres'"}
	}
	if c.RateLimit < 0 {
		return &ConfigError{Field: "RATE_LIMIT_INTERVAL", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
