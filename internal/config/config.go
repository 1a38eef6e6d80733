package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/stagehand/internal/timeline"
)

// Config is the full application configuration. Every field has a
// working default so stagehand runs with no config file at all.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Logistics LogisticsConfig `koanf:"logistics"`
	Timeline  TimelineConfig  `koanf:"timeline"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file location.
	Path string `koanf:"path"`
}

// LogisticsConfig holds the default lead-time estimates, in minutes,
// used when assigning a vehicle to an event.
type LogisticsConfig struct {
	LoadingMinutes     int `koanf:"loading_minutes"`
	PreparationMinutes int `koanf:"preparation_minutes"`
	TravelMinutes      int `koanf:"travel_minutes"`
}

// Durations converts the configured minutes into the scheduling form.
func (c LogisticsConfig) Durations() timeline.Durations {
	return timeline.Durations{
		LoadingMin:     c.LoadingMinutes,
		PreparationMin: c.PreparationMinutes,
		TravelMin:      c.TravelMinutes,
	}
}

type TimelineConfig struct {
	// DefaultZoom is the zoom level the timeline opens at: "days",
	// "hours" or "minutes".
	DefaultZoom string `koanf:"default_zoom"`
}

// LoggingConfig controls the file logger. The TUI owns the terminal,
// so logs never go to stdout.
type LoggingConfig struct {
	// Level is a zerolog level name: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	Path  string `koanf:"path"`
}

func (c *Config) SetDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = defaultDataPath("stagehand.db")
	}
	if c.Logistics.LoadingMinutes == 0 {
		c.Logistics.LoadingMinutes = 60
	}
	if c.Logistics.PreparationMinutes == 0 {
		c.Logistics.PreparationMinutes = 30
	}
	if c.Logistics.TravelMinutes == 0 {
		c.Logistics.TravelMinutes = 60
	}
	if c.Timeline.DefaultZoom == "" {
		c.Timeline.DefaultZoom = string(timeline.ZoomHours)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Path == "" {
		c.Logging.Path = defaultDataPath("stagehand.log")
	}
}

func (c Config) Validate() error {
	if c.Logistics.LoadingMinutes < 0 || c.Logistics.PreparationMinutes < 0 || c.Logistics.TravelMinutes < 0 {
		return fmt.Errorf("logistics durations must not be negative")
	}
	if !timeline.Zoom(c.Timeline.DefaultZoom).Valid() {
		return fmt.Errorf("unknown zoom level %q", c.Timeline.DefaultZoom)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}

// Load reads the YAML config at path, then applies STAGEHAND_*
// environment overrides (STAGEHAND_DATABASE__PATH maps to
// database.path). A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("STAGEHAND_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "stagehand_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath is where Load looks when the user gives no --config flag.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stagehand", "config.yaml")
	}
	return "stagehand.yaml"
}

func defaultDataPath(name string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stagehand", name)
	}
	return name
}
