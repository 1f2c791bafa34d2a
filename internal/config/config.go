// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/javiermolinar/rota/internal/shift"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Grid     GridConfig     `toml:"grid"`
	Storage  StorageConfig  `toml:"storage"`
	UI       UIConfig       `toml:"ui"`
}

// ScheduleConfig holds business-hours settings.
type ScheduleConfig struct {
	DayStart string `toml:"day_start"` // e.g., "07:00"
	DayEnd   string `toml:"day_end"`   // e.g., "21:00"
	Days     int    `toml:"days"`      // columns shown, starting Monday
}

// GridConfig holds slot and shift sizing.
type GridConfig struct {
	MinutesPerSlot      int `toml:"minutes_per_slot"`
	DefaultShiftMinutes int `toml:"default_shift_minutes"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme         string `toml:"theme"`          // "mocha", "macchiato", "frappe", "latte"
	RowsPerSlot   int    `toml:"rows_per_slot"`  // terminal rows per grid slot
	DragThreshold int    `toml:"drag_threshold"` // cells moved before a press becomes a drag
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart: "07:00",
			DayEnd:   "21:00",
			Days:     7,
		},
		Grid: GridConfig{
			MinutesPerSlot:      shift.SlotMinutes,
			DefaultShiftMinutes: 240,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme:         "frappe",
			RowsPerSlot:   2,
			DragThreshold: 1,
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rota.db"
	}
	return filepath.Join(home, ".local", "share", "rota", "rota.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "rota", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies ROTA_* environment variables.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ROTA_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("ROTA_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("ROTA_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROTA_DAYS: %w", err)
		}
		cfg.Schedule.Days = n
	}
	if v := os.Getenv("ROTA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ROTA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ROTA_ROWS_PER_SLOT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROTA_ROWS_PER_SLOT: %w", err)
		}
		cfg.UI.RowsPerSlot = n
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.Days < 1 || c.Schedule.Days > 7 {
		return fmt.Errorf("days must be between 1 and 7, got %d", c.Schedule.Days)
	}

	// Stored shifts live on the 30-minute lattice.
	step := c.Grid.MinutesPerSlot
	if step != shift.SlotMinutes {
		return fmt.Errorf("minutes_per_slot must be %d, got %d", shift.SlotMinutes, step)
	}
	r := c.TimeRange()
	if r.StartMinutes%step != 0 || r.EndMinutes%step != 0 {
		return fmt.Errorf("day_start and day_end must fall on %d-minute boundaries", step)
	}
	if c.Grid.DefaultShiftMinutes < step {
		return fmt.Errorf("default_shift_minutes must be at least %d", step)
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.UI.RowsPerSlot < 1 || c.UI.RowsPerSlot > 4 {
		return fmt.Errorf("rows_per_slot must be between 1 and 4, got %d", c.UI.RowsPerSlot)
	}
	if c.UI.DragThreshold < 0 {
		return errors.New("drag_threshold must not be negative")
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour, min := t[0:2], t[3:5]
	if !isDigits(hour) || !isDigits(min) || hour > "24" || min > "59" {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	if hour == "24" && min != "00" {
		return fmt.Errorf("%s must not be past 24:00, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TimeRange returns the configured business hours.
func (c *Config) TimeRange() shift.TimeRange {
	return shift.NewTimeRange(c.Schedule.DayStart, c.Schedule.DayEnd)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
