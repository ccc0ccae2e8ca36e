// Package config loads frame and engine settings for the loom CLI from a
// TOML file.
//
// Example loom.toml:
//
//	[frame]
//	width = 120
//	height = 40
//
//	[engine]
//	max_depth = 128
//	max_nodes = 65536
//	arena_block_size = 32768
//
//	[log]
//	level = "debug"
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/grindlemire/go-loom"
)

// Config is the parsed configuration file.
type Config struct {
	Frame  Frame  `toml:"frame"`
	Engine Engine `toml:"engine"`
	Log    Log    `toml:"log"`
}

// Frame is the area every frame is evaluated in.
type Frame struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Engine holds the window limits. Zero values keep the window defaults.
type Engine struct {
	MaxDepth       int `toml:"max_depth"`
	MaxNodes       int `toml:"max_nodes"`
	ArenaBlockSize int `toml:"arena_block_size"`
}

// Log configures the window logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Frame: Frame{Width: 80, Height: 24},
		Log:   Log{Level: "warn"},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data into cfg and validates it. Keys not present in data
// keep their current values; unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks ranges. Engine limits of zero mean "use the default".
func (c Config) Validate() error {
	if c.Frame.Width <= 0 || c.Frame.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.Frame.Width, c.Frame.Height)
	}
	if c.Engine.MaxDepth < 0 || c.Engine.MaxNodes < 0 || c.Engine.ArenaBlockSize < 0 {
		return fmt.Errorf("engine limits cannot be negative")
	}
	if n := c.Engine.ArenaBlockSize; n > 0 && n < loom.MinArenaBlockSize {
		return fmt.Errorf("arena_block_size must be 0 or at least %d, got %d", loom.MinArenaBlockSize, n)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Area returns the frame area.
func (c Config) Area() loom.Area {
	return loom.NewArea(c.Frame.Width, c.Frame.Height)
}

// Level returns the parsed log level, warn if unset.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Options maps the engine settings to window options. logger, when not nil,
// is set to the configured level and attached.
func (c Config) Options(logger *log.Logger) []loom.WindowOption {
	var opts []loom.WindowOption
	if c.Engine.MaxDepth > 0 {
		opts = append(opts, loom.WithMaxDepth(c.Engine.MaxDepth))
	}
	if c.Engine.MaxNodes > 0 {
		opts = append(opts, loom.WithMaxNodes(c.Engine.MaxNodes))
	}
	if c.Engine.ArenaBlockSize > 0 {
		opts = append(opts, loom.WithArenaBlockSize(c.Engine.ArenaBlockSize))
	}
	if logger != nil {
		logger.SetLevel(c.Level())
		opts = append(opts, loom.WithLogger(logger))
	}
	return opts
}
