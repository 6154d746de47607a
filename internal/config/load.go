package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/vibekanban/internal/log"
)

// KeyDelimiter separates nested viper keys. It is not "." so dotted color
// tokens under theme.colors stay single keys.
const KeyDelimiter = "::"

// LocalConfigPath is checked before the user config.
var LocalConfigPath = filepath.Join(".vibekanban", "config.yaml")

// NewViper returns a viper instance with the key delimiter and defaults
// vibekanban expects.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	SetDefaults(v)
	return v
}

// SetDefaults registers Defaults() with v so keys missing from the file
// still unmarshal to their default values.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	k := func(parts ...string) string {
		key := parts[0]
		for _, p := range parts[1:] {
			key += KeyDelimiter + p
		}
		return key
	}
	v.SetDefault(k("db_path"), d.DBPath)
	v.SetDefault(k("auto_refresh"), d.AutoRefresh)
	v.SetDefault(k("auto_refresh_debounce"), d.AutoRefreshDebounce)
	v.SetDefault(k("ui", "show_status_bar"), d.UI.ShowStatusBar)
	v.SetDefault(k("ui", "markdown_style"), d.UI.MarkdownStyle)
	v.SetDefault(k("scroll", "debounce"), d.Scroll.Debounce)
	v.SetDefault(k("scroll", "cooldown"), d.Scroll.Cooldown)
	v.SetDefault(k("scroll", "animation_frames"), d.Scroll.AnimationFrames)
	v.SetDefault(k("scroll", "overscan"), d.Scroll.Overscan)
	v.SetDefault(k("diff", "cache_ttl"), d.Diff.CacheTTL)
	v.SetDefault(k("diff", "load_timeout"), d.Diff.LoadTimeout)
	v.SetDefault(k("tracing", "enabled"), d.Tracing.Enabled)
	v.SetDefault(k("tracing", "exporter"), d.Tracing.Exporter)
	v.SetDefault(k("tracing", "otlp_endpoint"), d.Tracing.OTLPEndpoint)
	v.SetDefault(k("tracing", "sample_rate"), d.Tracing.SampleRate)
}

// Load reads the configuration into v and returns it validated along with
// the file used. Lookup order: explicit path, .vibekanban/config.yaml in the
// working directory, ~/.config/vibekanban/config.yaml. When no file exists a
// commented default is written to the user config location.
func Load(v *viper.Viper, explicitPath string) (Config, string, error) {
	switch {
	case explicitPath != "":
		v.SetConfigFile(explicitPath)
	case fileExists(LocalConfigPath):
		v.SetConfigFile(LocalConfigPath)
	default:
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || explicitPath != "" {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		// First run: write a commented default and continue with defaults
		// if that fails.
		if dir := configDir(); dir != "" {
			path := filepath.Join(dir, "config.yaml")
			if writeErr := WriteDefaultConfig(path); writeErr == nil {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return Config{}, "", fmt.Errorf("reading config: %w", err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.Tracing.FilePath = expandHome(cfg.Tracing.FilePath)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}

	used := v.ConfigFileUsed()
	log.Debug(log.CatConfig, "Loaded config", "path", used)
	return cfg, used, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
