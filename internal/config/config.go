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

// Store drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the catalog service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// GRPCConfig holds the gRPC health server settings. Port 0 disables it.
type GRPCConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds store connection settings.
type DatabaseConfig struct {
	Driver           string         `yaml:"driver"` // spanner, postgres, memory (default: spanner)
	Spanner          SpannerConfig  `yaml:"spanner"`
	Postgres         PostgresConfig `yaml:"postgres"`
	Memory           MemoryConfig   `yaml:"memory"`
	ReadinessTimeout int            `yaml:"readiness_timeout_sec"`
}

// SpannerConfig identifies a Cloud Spanner database.
type SpannerConfig struct {
	Project  string `yaml:"project"`
	Instance string `yaml:"instance"`
	Database string `yaml:"database"`
}

// DatabasePath returns projects/<p>/instances/<i>/databases/<d>.
func (s SpannerConfig) DatabasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", s.Project, s.Instance, s.Database)
}

// PostgresConfig holds PostgreSQL pool settings.
type PostgresConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

// MemoryConfig points the in-memory store at a JSON fixture. An empty path
// starts with no products.
type MemoryConfig struct {
	FixturePath string `yaml:"fixture_path"`
}

// CatalogConfig holds listing limits and featured product rules.
type CatalogConfig struct {
	DefaultLimit        int     `yaml:"default_limit"`
	MaxLimit            int     `yaml:"max_limit"`
	MaxFilterValues     int     `yaml:"max_filter_values"`
	QueryTimeoutMs      int     `yaml:"query_timeout_ms"`
	FeaturedMinDiscount float64 `yaml:"featured_min_discount"`
	FeaturedLimit       int     `yaml:"featured_limit"`
}

// QueryTimeout returns the per-query timeout.
func (c CatalogConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMs) * time.Millisecond
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
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSpanner
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.Postgres.MaxConns <= 0 {
		c.Database.Postgres.MaxConns = 10
	}
	if c.Catalog.DefaultLimit <= 0 {
		c.Catalog.DefaultLimit = 12
	}
	if c.Catalog.MaxLimit <= 0 {
		c.Catalog.MaxLimit = 100
	}
	if c.Catalog.MaxFilterValues <= 0 {
		c.Catalog.MaxFilterValues = 32
	}
	if c.Catalog.QueryTimeoutMs <= 0 {
		c.Catalog.QueryTimeoutMs = 5000
	}
	if c.Catalog.FeaturedMinDiscount <= 0 {
		c.Catalog.FeaturedMinDiscount = 40
	}
	if c.Catalog.FeaturedLimit <= 0 {
		c.Catalog.FeaturedLimit = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("grpc.port must be between 0 and 65535, got %d", c.GRPC.Port)
	}
	if c.GRPC.Port != 0 && c.GRPC.Port == c.HTTP.Port {
		return fmt.Errorf("grpc.port must differ from http.port")
	}

	switch c.Database.Driver {
	case DriverSpanner:
		s := c.Database.Spanner
		if s.Project == "" || s.Instance == "" || s.Database == "" {
			return fmt.Errorf("database.spanner.project, instance and database are required")
		}
	case DriverPostgres:
		if c.Database.Postgres.URL == "" {
			return fmt.Errorf("database.postgres.url is required")
		}
	case DriverMemory:
		// ok
	default:
		return fmt.Errorf("database.driver must be %q, %q or %q, got %q",
			DriverSpanner, DriverPostgres, DriverMemory, c.Database.Driver)
	}

	if c.Catalog.DefaultLimit > c.Catalog.MaxLimit {
		return fmt.Errorf("catalog.default_limit (%d) exceeds catalog.max_limit (%d)",
			c.Catalog.DefaultLimit, c.Catalog.MaxLimit)
	}
	if c.Catalog.FeaturedLimit > c.Catalog.MaxLimit {
		return fmt.Errorf("catalog.featured_limit (%d) exceeds catalog.max_limit (%d)",
			c.Catalog.FeaturedLimit, c.Catalog.MaxLimit)
	}
	return nil
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
