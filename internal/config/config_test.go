package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.HTTP.H2C)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "./data/catalog.db", cfg.Store.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, FormatText, cfg.Log.Format)
	assert.Equal(t, 10, cfg.Seed.Merchants)
	assert.Equal(t, uint64(1), cfg.Seed.RandomSeed)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
http:
  addr: ":9090"
store:
  sqlite_path: /tmp/from-file.db
log:
  format: json
seed:
  merchants: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("CATALOG_LOG_LEVEL", "debug")
	t.Setenv("CATALOG_HTTP_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr, "env overrides file")
	assert.Equal(t, "/tmp/from-file.db", cfg.Store.SQLitePath)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Seed.Merchants)
	assert.Equal(t, 8, cfg.Seed.ItemsPerMerchant)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: StoreConfig{Driver: DriverSQLite, SQLitePath: "x.db"},
			Log:   LogConfig{Level: "info", Format: FormatText},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }, true},
		{"postgres with dsn", func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.PostgresDSN = "postgres://localhost/catalog"
		}, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }, true},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"negative seed", func(c *Config) { c.Seed.Invoices = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
