// Package config provides YAML-based configuration loading for hubscout.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/hubscout/internal/scout"
	"gopkg.in/yaml.v3"
)

// DefaultStoreKey names the record list when none is configured.
const DefaultStoreKey = "rebuildt_scout_records_v1"

// Config is the top-level hubscout configuration, loaded from hubscout.yaml.
type Config struct {
	StoreKey   string          `yaml:"store_key"`
	Layout     string          `yaml:"layout"`
	Comparison string          `yaml:"comparison"`
	Defaults   DefaultsConfig  `yaml:"defaults"`
	Database   DatabaseConfig  `yaml:"database"`
	Dashboard  DashboardConfig `yaml:"dashboard"`
	Export     ExportConfig    `yaml:"export"`
	Backup     BackupConfig    `yaml:"backup"`
	Log        LogConfig       `yaml:"log"`
}

// DefaultsConfig pre-fills the setup screen of every new record.
type DefaultsConfig struct {
	Event    string `yaml:"event"`
	Scout    string `yaml:"scout"`
	Alliance string `yaml:"alliance"`
}

// DatabaseConfig selects where records are stored.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite or mysql
	Path   string `yaml:"path"`   // sqlite file
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Name   string `yaml:"name"`
}

// DashboardConfig holds settings for the local web view.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// ExportConfig holds settings for CSV/JSON export.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// BackupConfig controls scheduled JSON snapshots of the store.
type BackupConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
	Dir     string `yaml:"dir"`
	Keep    int    `yaml:"keep"`
}

// LogConfig controls the slog output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.StoreKey == "" {
		c.StoreKey = DefaultStoreKey
	}
	if c.Layout == "" {
		c.Layout = string(scout.LayoutFolded)
	}
	if c.Comparison == "" {
		c.Comparison = string(scout.ComparisonMineOpponent)
	}
	if c.Defaults.Alliance == "" {
		c.Defaults.Alliance = string(scout.AllianceRed)
	} else if a, err := scout.ParseAlliance(c.Defaults.Alliance); err == nil {
		c.Defaults.Alliance = string(a)
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(".hubscout", "records.db")
	}
	if c.Database.Driver == "mysql" {
		if c.Database.Host == "" {
			c.Database.Host = "127.0.0.1"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
		if c.Database.User == "" {
			c.Database.User = "root"
		}
		if c.Database.Name == "" {
			c.Database.Name = "hubscout"
		}
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Backup.Cron == "" {
		c.Backup.Cron = "*/10 * * * *"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = filepath.Join(".hubscout", "backups")
	}
	if c.Backup.Keep == 0 {
		c.Backup.Keep = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// validate checks that all fields are consistent.
func (c *Config) validate() error {
	var errs []string
	if _, err := scout.ParseLayout(c.Layout); err != nil {
		errs = append(errs, fmt.Sprintf("layout %q must be folded or terminal", c.Layout))
	}
	if _, err := scout.ParseComparison(c.Comparison); err != nil {
		errs = append(errs, fmt.Sprintf("comparison %q must be mine_opponent or side_label", c.Comparison))
	}
	if _, err := scout.ParseAlliance(c.Defaults.Alliance); err != nil {
		errs = append(errs, fmt.Sprintf("defaults.alliance %q must be Red or Blue", c.Defaults.Alliance))
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q must be sqlite or mysql", c.Database.Driver))
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, fmt.Sprintf("dashboard.port %d out of range", c.Dashboard.Port))
	}
	if c.Backup.Keep < 0 {
		errs = append(errs, "backup.keep must not be negative")
	}
	if _, err := cron.ParseStandard(c.Backup.Cron); err != nil {
		errs = append(errs, fmt.Sprintf("backup.cron %q: %v", c.Backup.Cron, err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Write marshals cfg as YAML to path, refusing to overwrite an existing file.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}
