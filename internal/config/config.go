package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the motoparts API configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// AppConfig holds service identity.
type AppConfig struct {
	Name string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // empty = admin endpoints disabled
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string `yaml:"cors_origins"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"` // per client IP, 0 = disabled
}

// CatalogConfig holds catalog store settings.
type CatalogConfig struct {
	Driver             string        `yaml:"driver"` // pgx or sqlite
	DSN                string        `yaml:"dsn"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	ConnMaxLifetimeSec int           `yaml:"conn_max_lifetime_sec"`
	FetchLimit         int           `yaml:"fetch_limit"`
	AutoMigrate        bool          `yaml:"auto_migrate"`
	PartCacheSize      int           `yaml:"part_cache_size"`
	PartCacheTTLSec    int           `yaml:"part_cache_ttl_sec"`
	Breaker            BreakerConfig `yaml:"breaker"`
}

// BreakerConfig holds circuit breaker settings for the catalog store.
type BreakerConfig struct {
	MaxRequests  uint32  `yaml:"max_requests"`
	IntervalSec  int     `yaml:"interval_sec"`
	TimeoutSec   int     `yaml:"timeout_sec"`
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Addrs             []string `yaml:"addrs"` // empty = in-process only
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	DB                int      `yaml:"db"`
	TLS               bool     `yaml:"tls"`
	DialTimeoutSec    int      `yaml:"dial_timeout_sec"`
	HealthIntervalSec int      `yaml:"health_interval_sec"`
	MaxEntries        int      `yaml:"max_entries"`
	EvictBatch        int      `yaml:"evict_batch"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "motoparts"
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if len(c.HTTP.CORSOrigins) == 0 {
		c.HTTP.CORSOrigins = []string{"*"}
	}
	if c.Catalog.Driver == "" {
		c.Catalog.Driver = "sqlite"
	}
	if c.Catalog.MaxOpenConns <= 0 {
		c.Catalog.MaxOpenConns = 10
	}
	if c.Catalog.ConnMaxLifetimeSec <= 0 {
		c.Catalog.ConnMaxLifetimeSec = 300
	}
	if c.Catalog.FetchLimit <= 0 {
		c.Catalog.FetchLimit = 2000
	}
	if c.Catalog.PartCacheSize <= 0 {
		c.Catalog.PartCacheSize = 1024
	}
	if c.Catalog.PartCacheTTLSec <= 0 {
		c.Catalog.PartCacheTTLSec = 300
	}
	if c.Catalog.Breaker.MaxRequests == 0 {
		c.Catalog.Breaker.MaxRequests = 1
	}
	if c.Catalog.Breaker.IntervalSec <= 0 {
		c.Catalog.Breaker.IntervalSec = 60
	}
	if c.Catalog.Breaker.TimeoutSec <= 0 {
		c.Catalog.Breaker.TimeoutSec = 30
	}
	if c.Catalog.Breaker.MinRequests == 0 {
		c.Catalog.Breaker.MinRequests = 5
	}
	if c.Catalog.Breaker.FailureRatio <= 0 {
		c.Catalog.Breaker.FailureRatio = 0.6
	}
	if c.Cache.DialTimeoutSec <= 0 {
		c.Cache.DialTimeoutSec = 5
	}
	if c.Cache.HealthIntervalSec <= 0 {
		c.Cache.HealthIntervalSec = 30
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 1000
	}
	if c.Cache.EvictBatch <= 0 {
		c.Cache.EvictBatch = 100
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitPerMin < 0 {
		return fmt.Errorf("http.rate_limit_per_min must be non-negative, got %d", c.HTTP.RateLimitPerMin)
	}
	switch c.Catalog.Driver {
	case "pgx", "postgres", "sqlite":
		// ok
	default:
		return fmt.Errorf("catalog.driver must be \"pgx\" or \"sqlite\", got %q", c.Catalog.Driver)
	}
	if c.Catalog.DSN == "" {
		return fmt.Errorf("catalog.dsn is required")
	}
	if r := c.Catalog.Breaker.FailureRatio; r > 1 {
		return fmt.Errorf("catalog.breaker.failure_ratio must be in (0, 1], got %g", r)
	}
	if c.Cache.EvictBatch > c.Cache.MaxEntries {
		return fmt.Errorf("cache.evict_batch (%d) must not exceed cache.max_entries (%d)",
			c.Cache.EvictBatch, c.Cache.MaxEntries)
	}
	return nil
}

// ConnMaxLifetime returns the catalog connection lifetime.
func (c CatalogConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeSec) * time.Second
}

// PartCacheTTL returns the part-by-id L1 cache TTL.
func (c CatalogConfig) PartCacheTTL() time.Duration {
	return time.Duration(c.PartCacheTTLSec) * time.Second
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
