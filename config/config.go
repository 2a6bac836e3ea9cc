// ABOUTME: Configuration storage at XDG paths with environment overrides
// ABOUTME: Handles config file load/save, .env loading, and defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// Config stores the tracker's local paths and token lifetimes.
type Config struct {
	DBPath           string `json:"db_path"`
	TokenDir         string `json:"token_dir"`
	SessionTTLMin    int    `json:"session_ttl_minutes"`
	ResetTokenTTLMin int    `json:"reset_token_ttl_minutes"`
}

// Dir returns the XDG-compliant data directory.
func Dir() string {
	return filepath.Join(xdg.DataHome, "pipetrack")
}

// Path returns the XDG-compliant path of the config file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads configuration, applying layers in order: defaults, the config
// file if present, a .env file in the working directory if present, then
// PIPETRACK_* environment variables:
// - PIPETRACK_DB_PATH
// - PIPETRACK_TOKEN_DIR
// - PIPETRACK_SESSION_TTL_MINUTES
// - PIPETRACK_RESET_TTL_MINUTES.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:           filepath.Join(Dir(), "pipetrack.db"),
		TokenDir:         filepath.Join(Dir(), "tokens"),
		SessionTTLMin:    60 * 24 * 30,
		ResetTokenTTLMin: 15,
	}

	f, err := os.Open(Path())
	if err == nil {
		defer func() { _ = f.Close() }()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	// .env is optional; absence is not an error
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if dbPath := os.Getenv("PIPETRACK_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if tokenDir := os.Getenv("PIPETRACK_TOKEN_DIR"); tokenDir != "" {
		cfg.TokenDir = tokenDir
	}
	if ttl := os.Getenv("PIPETRACK_SESSION_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.SessionTTLMin = n
		}
	}
	if ttl := os.Getenv("PIPETRACK_RESET_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.ResetTokenTTLMin = n
		}
	}
}

// Save writes the config file with restricted permissions.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
