package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/sift/internal/rule"
)

// Config represents the complete sift configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Filters []rule.Spec   `mapstructure:"filters"`
	Output  OutputConfig  `mapstructure:"output"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig controls where records come from
type DataConfig struct {
	// Paths lists dataset files (.json, .yaml/.yml, .toml) loaded when no
	// files are given on the command line
	Paths []string `mapstructure:"paths"`
	// Watch reloads the dataset in the TUI when a file changes
	Watch bool `mapstructure:"watch"`
	// DebounceMs coalesces bursts of file events (default: 200)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// OutputConfig controls non-interactive output
type OutputConfig struct {
	// Format is "text" or "json" (default: "text")
	Format string `mapstructure:"format"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "monokai", "dracula", "nord", or a custom theme name
	Theme string `mapstructure:"theme"`
	// PanelWidth is the width of the filter panel in columns (default: 36, min: 20, max: 80)
	PanelWidth int `mapstructure:"panel_width"`
	// MaxRows limits how many records are rendered, 0 = fit to screen
	MaxRows int `mapstructure:"max_rows"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled writes a JSON log file to Dir
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Dir is the log directory; empty means the config directory
	Dir string `mapstructure:"dir"`
}

// Debounce returns the watch debounce as a time.Duration
func (c *DataConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// ResolveDir returns the log directory, defaulting to ConfigDir.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	return ConfigDir()
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Paths:      []string{},
			Watch:      false,
			DebounceMs: 200,
		},
		Filters: []rule.Spec{},
		Output: OutputConfig{
			Format: "text",
		},
		TUI: TUIConfig{
			Theme:      "default",
			PanelWidth: 36,
			MaxRows:    0,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.paths", defaults.Data.Paths)
	viper.SetDefault("data.watch", defaults.Data.Watch)
	viper.SetDefault("data.debounce_ms", defaults.Data.DebounceMs)

	viper.SetDefault("filters", defaults.Filters)

	// Output defaults
	viper.SetDefault("output.format", defaults.Output.Format)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.panel_width", defaults.TUI.PanelWidth)
	viper.SetDefault("tui.max_rows", defaults.TUI.MaxRows)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sift")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sift"
	}
	return filepath.Join(home, ".config", "sift")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidOutputFormats returns the list of valid output formats
func ValidOutputFormats() []string {
	return []string{"text", "json"}
}
