package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECUREBANK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Backend.Mode)
	require.Equal(t, "http://localhost:8001/api", cfg.Backend.BaseURL)
	require.Equal(t, ":8001", cfg.Server.Addr)
	require.Equal(t, "securebank", cfg.Server.TokenIssuer)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
mode = "remote"
base_url = "https://bank.example.com/api"

[ui]
currency_symbol = "€"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SECUREBANK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "remote", cfg.Backend.Mode)
	require.Equal(t, "https://bank.example.com/api", cfg.Backend.BaseURL)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
	// untouched keys keep their defaults
	require.Equal(t, ":8001", cfg.Server.Addr)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SECUREBANK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Backend.Mode = "remote"
	cfg.UI.DateFormat = "2006-01-02"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "remote", loaded.Backend.Mode)
	require.Equal(t, "2006-01-02", loaded.UI.DateFormat)
}

func TestPath(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv("SECUREBANK_CONFIG", custom)
	require.Equal(t, custom, Path())

	t.Setenv("SECUREBANK_CONFIG", "")
	require.Equal(t, filepath.Join(os.Getenv("HOME"), ".config", "securebank", "config.toml"), Path())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SECUREBANK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("SECUREBANK_BACKEND_MODE", "remote")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "remote", cfg.Backend.Mode)
}
