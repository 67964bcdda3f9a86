package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Backend  BackendConfig
	Database DatabaseConfig
	Server   ServerConfig
	UI       UIConfig
}

// BackendConfig selects the banking backend strategy.
type BackendConfig struct {
	Mode    string `mapstructure:"mode"` // "remote" or "local"
	BaseURL string `mapstructure:"base_url"`
}

// DatabaseConfig holds sqlite settings for the local backend.
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds bankd settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	TokenSecret string `mapstructure:"token_secret"`
	TokenIssuer string `mapstructure:"token_issuer"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
}

// Load reads configuration from file and env. Env var overrides use prefix SECUREBANK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("backend.mode", "local")
	v.SetDefault("backend.base_url", "http://localhost:8001/api")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "securebank", "securebank.db"))
	v.SetDefault("server.addr", ":8001")
	v.SetDefault("server.token_secret", "your-secret-key-here")
	v.SetDefault("server.token_issuer", "securebank")
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.timezone", "Local")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SECUREBANK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "securebank"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SECUREBANK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Path returns where Save writes and Load looks first: the SECUREBANK_CONFIG
// override, or the default location under ~/.config.
func Path() string {
	if p := os.Getenv("SECUREBANK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "securebank", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if
// needed. Written on first run so users have a file to edit; the token secret
// belongs in env vars on any shared machine and is deliberately not written back.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("backend.mode", cfg.Backend.Mode)
	v.Set("backend.base_url", cfg.Backend.BaseURL)
	v.Set("database.path", cfg.Database.Path)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.token_issuer", cfg.Server.TokenIssuer)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
