// Package config provides configuration types and defaults for vibekanban.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/vibekanban/internal/log"
	"github.com/zjrosen/vibekanban/internal/tracing"
)

// Config holds all configuration options for vibekanban.
type Config struct {
	DBPath              string        `mapstructure:"db_path"`
	AutoRefresh         bool          `mapstructure:"auto_refresh"`
	AutoRefreshDebounce time.Duration `mapstructure:"auto_refresh_debounce"`
	UI                  UIConfig      `mapstructure:"ui"`
	Theme               ThemeConfig   `mapstructure:"theme"`
	Scroll              ScrollConfig  `mapstructure:"scroll"`
	Diff                DiffConfig    `mapstructure:"diff"`
	Tracing             TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base.
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. Empty uses terminal detection.
	Mode string `mapstructure:"mode"`

	// Colors overrides individual color tokens. Both nested YAML and quoted
	// dot notation ("text.primary": "#FF0000") are accepted.
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ScrollConfig tunes the tree/diff scroll synchronization.
type ScrollConfig struct {
	Debounce        time.Duration `mapstructure:"debounce"`         // quiet period ending a user scroll
	Cooldown        time.Duration `mapstructure:"cooldown"`         // settle time after a programmatic scroll
	AnimationFrames int           `mapstructure:"animation_frames"` // 0 jumps immediately
	Overscan        int           `mapstructure:"overscan"`         // lines rendered beyond the viewport
}

// DiffConfig controls diff loading.
type DiffConfig struct {
	CacheTTL    time.Duration `mapstructure:"cache_ttl"` // 0 disables the cache
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// TracingConfig configures OpenTelemetry spans for executed actions.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file (default), stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// ToTracing converts to the tracing package's config, filling the default
// trace file when none is set.
func (t TracingConfig) ToTracing() tracing.Config {
	cfg := tracing.DefaultConfig()
	cfg.Enabled = t.Enabled
	if t.Exporter != "" {
		cfg.Exporter = t.Exporter
	}
	cfg.FilePath = t.FilePath
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultTracesFilePath()
	}
	if t.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = t.OTLPEndpoint
	}
	cfg.SampleRate = t.SampleRate
	return cfg
}

// configDir returns ~/.config/vibekanban, or "" if the home dir is unknown.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vibekanban")
}

// DefaultDBPath returns ~/.config/vibekanban/vibekanban.db, falling back to
// the working directory when the home dir is unavailable.
func DefaultDBPath() string {
	dir := configDir()
	if dir == "" {
		return filepath.Join(".vibekanban", "vibekanban.db")
	}
	return filepath.Join(dir, "vibekanban.db")
}

// DefaultTracesFilePath returns ~/.config/vibekanban/traces/traces.jsonl or
// an empty string if the home dir is unavailable.
func DefaultTracesFilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:              DefaultDBPath(),
		AutoRefresh:         true,
		AutoRefreshDebounce: 500 * time.Millisecond,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Scroll: ScrollConfig{
			Debounce:        300 * time.Millisecond,
			Cooldown:        200 * time.Millisecond,
			AnimationFrames: 6,
			Overscan:        10,
		},
		Diff: DiffConfig{
			CacheTTL:    5 * time.Minute,
			LoadTimeout: 10 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     tracing.ExporterFile,
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration and joins every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.AutoRefreshDebounce < 0 {
		errs = append(errs, fmt.Errorf("auto_refresh_debounce must not be negative, got %v", c.AutoRefreshDebounce))
	}
	if err := ValidateUI(c.UI); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateScroll(c.Scroll); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateDiff(c.Diff); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateUI checks the UI options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateScroll checks the scroll synchronization timings.
func ValidateScroll(s ScrollConfig) error {
	if s.Debounce < 0 {
		return fmt.Errorf("scroll.debounce must not be negative, got %v", s.Debounce)
	}
	if s.Cooldown < 0 {
		return fmt.Errorf("scroll.cooldown must not be negative, got %v", s.Cooldown)
	}
	if s.AnimationFrames < 0 || s.AnimationFrames > 60 {
		return fmt.Errorf("scroll.animation_frames must be between 0 and 60, got %d", s.AnimationFrames)
	}
	if s.Overscan < 0 {
		return fmt.Errorf("scroll.overscan must not be negative, got %d", s.Overscan)
	}
	return nil
}

// ValidateDiff checks the diff loading options.
func ValidateDiff(d DiffConfig) error {
	if d.CacheTTL < 0 {
		return fmt.Errorf("diff.cache_ttl must not be negative, got %v", d.CacheTTL)
	}
	if d.LoadTimeout < 0 {
		return fmt.Errorf("diff.load_timeout must not be negative, got %v", d.LoadTimeout)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// The file exporter falls back to DefaultTracesFilePath, so only otlp
	// needs an explicit destination.
	if t.Enabled && t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return errors.New("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vibekanban configuration

# Workspace database (default: ~/.config/vibekanban/vibekanban.db)
# db_path: ~/.config/vibekanban/vibekanban.db

# Reload diffs when files in a workspace repository change
auto_refresh: true
auto_refresh_debounce: 500ms

# UI settings
ui:
  show_status_bar: true
  markdown_style: dark  # dark or light

# Theme configuration
# theme:
#   preset: catppuccin-mocha  # default, catppuccin-mocha, catppuccin-latte, dracula, nord, high-contrast
#   colors:
#     text.primary: "#FF0000"

# File tree / diff scroll synchronization
scroll:
  debounce: 300ms        # quiet period before a user scroll settles
  cooldown: 200ms        # settle time after jumping to a file
  animation_frames: 6    # frames of the jump animation (0 jumps immediately)
  overscan: 10           # lines rendered above and below the viewport

# Diff loading
diff:
  cache_ttl: 5m          # 0 disables caching
  load_timeout: 10s      # per repository

# Tracing of executed command bar actions
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/vibekanban/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
