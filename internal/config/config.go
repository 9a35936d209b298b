// Package config loads and saves the tubegrab configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "config.yml"
	AppDirName     = "tubegrab"

	// EnvAPIKey overrides provider.api_key so the credential can be
	// injected at process start instead of living in a file.
	EnvAPIKey = "TUBEGRAB_API_KEY"
	// EnvAPIHost overrides provider.api_host.
	EnvAPIHost = "TUBEGRAB_API_HOST"
)

// ConfigDir returns the standard config directory for tubegrab.
// Windows: %APPDATA%\tubegrab\
// macOS/Linux: ~/.config/tubegrab/
func ConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ConfigPath returns the path to the config file,
// e.g. ~/.config/tubegrab/config.yml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

type Config struct {
	// Server holds HTTP listener settings
	Server ServerConfig `yaml:"server,omitempty"`

	// Provider holds the primary metadata API credential pair
	Provider ProviderConfig `yaml:"provider,omitempty"`

	// Mirror holds the external download mirror settings
	Mirror MirrorConfig `yaml:"mirror,omitempty"`

	// Cache holds the resolved-metadata cache settings
	Cache CacheConfig `yaml:"cache,omitempty"`

	// HTTPTimeoutSeconds bounds each outbound provider call (default: 15)
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	// Port is the HTTP listen port (default: 8080)
	Port int `yaml:"port,omitempty"`
}

// ProviderConfig holds the primary metadata provider credentials.
// The API key is never compiled into source; set it here or via
// TUBEGRAB_API_KEY.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	APIHost string `yaml:"api_host,omitempty"`
}

// MirrorConfig holds the download mirror settings
type MirrorConfig struct {
	// BaseURL is the mirror site root (default: https://www.y2mate.com)
	BaseURL string `yaml:"base_url,omitempty"`
}

// CacheConfig holds resolved-metadata cache settings
type CacheConfig struct {
	// TTLSeconds is how long a resolved result is reused. 0 disables the
	// cache so every request re-runs the full provider chain.
	TTLSeconds int `yaml:"ttl_seconds,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Provider: ProviderConfig{
			APIHost: "ytstream-download-youtube-videos.p.rapidapi.com",
		},
		Mirror:             MirrorConfig{BaseURL: "https://www.y2mate.com"},
		HTTPTimeoutSeconds: 15,
	}
}

// Exists checks if config file exists
func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from ~/.config/tubegrab/config.yml
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to ~/.config/tubegrab/config.yml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configPath, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	header := "# tubegrab configuration file\n# Run 'tubegrab init' to regenerate with defaults\n\n"
	return os.WriteFile(configPath, []byte(header+string(data)), 0644)
}

// Init creates a new config.yml with default values
func Init() error {
	if Exists() {
		path, _ := ConfigPath()
		return fmt.Errorf("%s already exists", path)
	}
	return Save(DefaultConfig())
}

// LoadOrDefault loads config if it exists, otherwise returns defaults.
// Environment overrides are applied in both cases.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = DefaultConfig()
	}
	applyDefaults(cfg)
	loadEnv(cfg)
	return cfg
}

// applyDefaults fills in zero values left out of a user-written file.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Provider.APIHost == "" {
		cfg.Provider.APIHost = def.Provider.APIHost
	}
	if cfg.Mirror.BaseURL == "" {
		cfg.Mirror.BaseURL = def.Mirror.BaseURL
	}
	if cfg.HTTPTimeoutSeconds == 0 {
		cfg.HTTPTimeoutSeconds = def.HTTPTimeoutSeconds
	}
}

// loadEnv applies environment variable overrides.
func loadEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv(EnvAPIHost); v != "" {
		cfg.Provider.APIHost = v
	}
}
