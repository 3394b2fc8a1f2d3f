// Package config loads service settings from defaults, an optional YAML file
// and CATALOG_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CATALOG_HTTP_ADDR.
const EnvPrefix = "CATALOG"

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the full service configuration.
type Config struct {
	HTTP  HTTPConfig  `mapstructure:"http"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
	Seed  SeedConfig  `mapstructure:"seed"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
	H2C  bool   `mapstructure:"h2c"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SeedConfig sizes the generated sample data.
type SeedConfig struct {
	Merchants        int    `mapstructure:"merchants"`
	ItemsPerMerchant int    `mapstructure:"items_per_merchant"`
	Customers        int    `mapstructure:"customers"`
	Invoices         int    `mapstructure:"invoices"`
	RandomSeed       uint64 `mapstructure:"random_seed"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"http.addr":               ":8080",
		"http.h2c":                true,
		"store.driver":            DriverSQLite,
		"store.sqlite_path":       "./data/catalog.db",
		"store.postgres_dsn":      "",
		"log.level":               "info",
		"log.format":              FormatText,
		"seed.merchants":          10,
		"seed.items_per_merchant": 8,
		"seed.customers":          20,
		"seed.invoices":           50,
		"seed.random_seed":        1,
	}
}

// Load reads the configuration. path may be empty to skip the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("store.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}

	if c.Seed.Merchants < 0 || c.Seed.ItemsPerMerchant < 0 || c.Seed.Customers < 0 || c.Seed.Invoices < 0 {
		return fmt.Errorf("seed counts cannot be negative")
	}
	return nil
}
