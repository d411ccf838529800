package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
catalog:
  source: sqlite
  path: "file:campus.db"
route:
  units_per_minute: 3.5
server:
  addr: ":9090"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Catalog.Source)
	assert.Equal(t, "file:campus.db", cfg.Catalog.Path)
	assert.Equal(t, 3.5, cfg.Route.UnitsPerMinute)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	// untouched sections keep defaults
	assert.Equal(t, "locations", cfg.Catalog.Table)
	assert.Equal(t, 60, cfg.Map.Width)
	assert.Equal(t, 5432, cfg.Postgres.Port)
}

func TestLoadFallsBackToExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path+".example", []byte("map:\n  width: 80\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Map.Width)
}

func TestLoadRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown source", "catalog:\n  source: ftp\n"},
		{"negative pace", "route:\n  units_per_minute: -1\n"},
		{"negative timeout", "catalog:\n  load_timeout: -5\n"},
		{"not yaml", "catalog: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
