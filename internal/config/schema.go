package config

// Config is the root configuration structure.
type Config struct {
	Player  PlayerConfig  `toml:"player"`
	Library LibraryConfig `toml:"library"`
	Resolve ResolveConfig `toml:"resolve"`
	TUI     TUIConfig     `toml:"tui"`
	Log     LogConfig     `toml:"log"`
}

// PlayerConfig holds external player process settings.
type PlayerConfig struct {
	Command          string   `toml:"command"`
	Args             []string `toml:"args"`
	StopGraceMs      int      `toml:"stop_grace_ms"`
	StartupConfirmMs int      `toml:"startup_confirm_ms"`
	PollIntervalMs   int      `toml:"poll_interval_ms"`
}

// LibraryConfig holds station library persistence settings.
type LibraryConfig struct {
	Path string `toml:"path"`
}

// ResolveConfig holds playlist-URL resolution settings. Resolution is on
// unless explicitly disabled.
type ResolveConfig struct {
	Disabled  bool `toml:"disabled"`
	TimeoutMs int  `toml:"timeout_ms"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
