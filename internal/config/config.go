package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.airbandrc, $XDG_CONFIG_HOME/airband/config.toml, ~/.config/airband/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".airbandrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "airband", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("AIRBAND_PLAYER_COMMAND"); v != "" {
		cfg.Player.Command = v
	}
	if v := os.Getenv("AIRBAND_PLAYER_STOP_GRACE_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.StopGraceMs = i
		}
	}
	if v := os.Getenv("AIRBAND_PLAYER_POLL_INTERVAL_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.PollIntervalMs = i
		}
	}

	// Library
	if v := os.Getenv("AIRBAND_LIBRARY_PATH"); v != "" {
		cfg.Library.Path = v
	}

	// TUI
	if v := os.Getenv("AIRBAND_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("AIRBAND_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("AIRBAND_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AIRBAND_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// StopGrace returns the stop grace period as a duration.
func (c *PlayerConfig) StopGrace() time.Duration {
	return time.Duration(c.StopGraceMs) * time.Millisecond
}

// StartupConfirm returns the startup confirmation window as a duration.
func (c *PlayerConfig) StartupConfirm() time.Duration {
	return time.Duration(c.StartupConfirmMs) * time.Millisecond
}

// PollInterval returns the monitor poll interval as a duration.
func (c *PlayerConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Timeout returns the resolution timeout as a duration.
func (c *ResolveConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
