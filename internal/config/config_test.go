package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	require.Equal(t, 10, cfg.UI.PageSize)
	require.Equal(t, "info", cfg.Log.Level)
	require.NotEmpty(t, cfg.State.Path)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://reject.example.com/api
ui:
  page_size: 50
log:
  level: debug
`), 0o644))
	t.Setenv("REJECTDESK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://reject.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 50, cfg.UI.PageSize)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example.com\n"), 0o644))
	t.Setenv("REJECTDESK_CONFIG_PATH", path)
	t.Setenv("REJECTDESK_API_BASE", "https://env.example.com")
	t.Setenv("REJECTDESK_PAGE_SIZE", "20")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, 20, cfg.UI.PageSize)
}

func TestInvalidPageSize(t *testing.T) {
	t.Setenv("REJECTDESK_PAGE_SIZE", "25")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("REJECTDESK_PAGE_SIZE", "lots")
	_, err = Load()
	require.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	t.Setenv("REJECTDESK_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}
