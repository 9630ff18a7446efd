package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Player.Command != "ffplay" {
		t.Errorf("Player.Command = %q, want %q", cfg.Player.Command, "ffplay")
	}
	if cfg.Player.StopGrace() != 2*time.Second {
		t.Errorf("StopGrace() = %v, want 2s", cfg.Player.StopGrace())
	}
	if cfg.Player.PollInterval() != time.Second {
		t.Errorf("PollInterval() = %v, want 1s", cfg.Player.PollInterval())
	}
	if cfg.Resolve.Disabled {
		t.Error("Resolve.Disabled = true by default, want false")
	}
	if cfg.Resolve.Timeout() != 5*time.Second {
		t.Errorf("Resolve.Timeout() = %v, want 5s", cfg.Resolve.Timeout())
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Player: PlayerConfig{Command: "mpv", StopGraceMs: 500}}
	cfg.ApplyDefaults()

	if cfg.Player.Command != "mpv" {
		t.Errorf("Player.Command = %q, want %q", cfg.Player.Command, "mpv")
	}
	if cfg.Player.StopGraceMs != 500 {
		t.Errorf("Player.StopGraceMs = %d, want 500", cfg.Player.StopGraceMs)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
[player]
command = "mpv"
args = ["--no-video"]
stop_grace_ms = 1500

[library]
path = "/tmp/stations.json"

[resolve]
disabled = true
`
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Player.Command != "mpv" {
		t.Errorf("Player.Command = %q, want %q", cfg.Player.Command, "mpv")
	}
	if len(cfg.Player.Args) != 1 || cfg.Player.Args[0] != "--no-video" {
		t.Errorf("Player.Args = %v, want [--no-video]", cfg.Player.Args)
	}
	if cfg.Player.StopGrace() != 1500*time.Millisecond {
		t.Errorf("StopGrace() = %v, want 1.5s", cfg.Player.StopGrace())
	}
	if cfg.Library.Path != "/tmp/stations.json" {
		t.Errorf("Library.Path = %q, want /tmp/stations.json", cfg.Library.Path)
	}
	if !cfg.Resolve.Disabled {
		t.Error("Resolve.Disabled = false, want true")
	}

	// Defaults fill in what the file leaves out.
	if cfg.Player.PollInterval() != time.Second {
		t.Errorf("PollInterval() = %v, want default 1s", cfg.Player.PollInterval())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AIRBAND_PLAYER_COMMAND", "vlc")
	t.Setenv("AIRBAND_LIBRARY_PATH", "/tmp/lib.json")
	t.Setenv("AIRBAND_PLAYER_POLL_INTERVAL_MS", "250")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.Player.Command != "vlc" {
		t.Errorf("Player.Command = %q, want %q", cfg.Player.Command, "vlc")
	}
	if cfg.Library.Path != "/tmp/lib.json" {
		t.Errorf("Library.Path = %q, want /tmp/lib.json", cfg.Library.Path)
	}
	if cfg.Player.PollIntervalMs != 250 {
		t.Errorf("Player.PollIntervalMs = %d, want 250", cfg.Player.PollIntervalMs)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Player.StopGraceMs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil for negative stop grace, want error")
	}

	cfg = Default()
	cfg.TUI.Theme = "neon"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil for bad theme, want error")
	}

	cfg = Default()
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil for bad log level, want error")
	}
}
