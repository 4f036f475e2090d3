package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default directory endpoint and client behaviour.
const (
	DefaultServerURL   = "https://de1.api.radio-browser.info"
	DefaultTimeoutSec  = 15
	DefaultCacheTTLSec = 300
	DefaultUserAgent   = "tune-go/1.0"
)

// Config represents the main configuration for tune.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Directory  DirectoryConfig  `toml:"directory"`
	Database   DatabaseConfig   `toml:"database"`
	Favourites FavouritesConfig `toml:"favourites"`
}

// DirectoryConfig holds settings for the remote station directory client.
type DirectoryConfig struct {
	ServerURL   string `toml:"server_url"`
	TimeoutSec  int    `toml:"timeout_sec"`
	CacheTTLSec int    `toml:"cache_ttl_sec"`
	UserAgent   string `toml:"user_agent"`
}

// DatabaseConfig represents configuration for the favourites database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// FavouritesConfig holds the persisted favourites display settings.
// SortBy is a comparator token (e.g. "name", "bitrate_desc") and survives
// across sessions.
type FavouritesConfig struct {
	SortBy string `toml:"sort_by"`
}

// NewConfig creates a new Config with the provided base directory and
// default settings.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Directory: DirectoryConfig{
			ServerURL:   DefaultServerURL,
			TimeoutSec:  DefaultTimeoutSec,
			CacheTTLSec: DefaultCacheTTLSec,
			UserAgent:   DefaultUserAgent,
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Favourites: FavouritesConfig{
			SortBy: "none",
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// applyDefaults fills in zero values left out of an existing config file so
// older files keep working when new settings appear.
func (c *Config) applyDefaults() {
	if c.Directory.ServerURL == "" {
		c.Directory.ServerURL = DefaultServerURL
	}
	if c.Directory.TimeoutSec == 0 {
		c.Directory.TimeoutSec = DefaultTimeoutSec
	}
	if c.Directory.CacheTTLSec == 0 {
		c.Directory.CacheTTLSec = DefaultCacheTTLSec
	}
	if c.Directory.UserAgent == "" {
		c.Directory.UserAgent = DefaultUserAgent
	}
	if c.Favourites.SortBy == "" {
		c.Favourites.SortBy = "none"
	}
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
// This is an internal helper and should not be exported.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// Save persists the config back to the given path, overwriting it.
// Used to keep the favourites sort order across sessions.
func Save(path string, cfg *Config) error {
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
