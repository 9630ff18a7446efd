package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Command:          "ffplay",
			StopGraceMs:      2000,
			StartupConfirmMs: 2000,
			PollIntervalMs:   1000,
		},
		Resolve: ResolveConfig{
			TimeoutMs: 5000,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Command == "" {
		c.Player.Command = d.Player.Command
	}
	if c.Player.StopGraceMs == 0 {
		c.Player.StopGraceMs = d.Player.StopGraceMs
	}
	if c.Player.StartupConfirmMs == 0 {
		c.Player.StartupConfirmMs = d.Player.StartupConfirmMs
	}
	if c.Player.PollIntervalMs == 0 {
		c.Player.PollIntervalMs = d.Player.PollIntervalMs
	}

	// Resolve
	if c.Resolve.TimeoutMs == 0 {
		c.Resolve.TimeoutMs = d.Resolve.TimeoutMs
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
