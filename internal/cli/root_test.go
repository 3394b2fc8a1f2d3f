package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okayama-mayu/rails-engine/internal/config"
	"github.com/okayama-mayu/rails-engine/internal/service"
	"github.com/okayama-mayu/rails-engine/internal/storage/sqlite"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db", "catalog.db")
	t.Setenv("CATALOG_STORE_SQLITE_PATH", dbPath)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")
	assert.FileExists(t, dbPath)
}

func TestSeedCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	t.Setenv("CATALOG_STORE_SQLITE_PATH", dbPath)
	t.Setenv("CATALOG_SEED_MERCHANTS", "2")
	t.Setenv("CATALOG_SEED_ITEMS_PER_MERCHANT", "3")
	t.Setenv("CATALOG_SEED_CUSTOMERS", "2")
	t.Setenv("CATALOG_SEED_INVOICES", "4")

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 merchants, 6 items, 2 customers, 4 invoices")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already seeded")

	out, err = execute(t, "seed", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 merchants")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("CATALOG_STORE_DRIVER", "mysql")

	_, err := execute(t, "migrate")
	assert.ErrorContains(t, err, "unknown store.driver")
}

func TestNewHandler(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{HTTP: config.HTTPConfig{H2C: true}}
	h := newHandler(cfg, service.NewCatalogService(store))

	for _, path := range []string{"/health", "/api/v1/items", "/metrics"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
