// Package config provides configuration management for the dataset tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"slcricket/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingTeamName     = errors.New("team.name is required")
	ErrInvalidStartDate    = errors.New("window.start_date must be YYYY-MM-DD")
	ErrNoSources           = errors.New("at least one source is required")
	ErrSourceMissingPath   = errors.New("source path is required")
	ErrSourceUnknownFormat = errors.New("source format must be Test, ODI or T20")
	ErrDuplicateFormat     = errors.New("each format may have only one enabled source")
	ErrNoEnabledSources    = errors.New("at least one source must be enabled")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrMissingOutputFile   = errors.New("output.raw_csv and output.clean_csv are required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
)

// Environment variables read by ApplyEnv.
const (
	EnvTeam        = "CRICKET_TEAM"
	EnvWindowStart = "CRICKET_WINDOW_START"
	EnvLogLevel    = "CRICKET_LOG_LEVEL"
	EnvOutputDir   = "CRICKET_OUTPUT_DIR"
)

// DefaultHomeVenues are the designated team's home grounds as spelled in
// the source data.
var DefaultHomeVenues = []string{
	"Galle International Stadium",
	"R Premadasa Stadium",
	"R Premadasa Stadium, Colombo",
	"R.Premadasa Stadium, Khettarama",
	"Sinhalese Sports Club Ground",
	"Sinhalese Sports Club Ground, Colombo",
	"Sinhalese Sports Club",
	"P Sara Oval",
	"P Saravanamuttu Stadium",
	"Pallekele International Cricket Stadium",
	"Rangiri Dambulla International Stadium",
	"Mahinda Rajapaksa International Cricket Stadium, Sooriyawewa",
	"Mahinda Rajapaksa International Cricket Stadium, Sooriyawewa, Hambantota",
	"Welagedara Stadium",
	"Colts Cricket Club Ground",
	"Asgiriya Stadium",
	"Colombo Cricket Club Ground",
}

// Config represents the complete dataset configuration.
type Config struct {
	Team       TeamConfig       `yaml:"team"`
	Window     WindowConfig     `yaml:"window"`
	Sources    []SourceConfig   `yaml:"sources"`
	Output     OutputConfig     `yaml:"output"`
	HomeVenues []string         `yaml:"home_venues"`
	Logging    LoggingConfig    `yaml:"logging"`
	Processing ProcessingConfig `yaml:"processing"`
}

// TeamConfig names the designated team.
type TeamConfig struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// WindowConfig bounds the matches kept.
type WindowConfig struct {
	StartDate string `yaml:"start_date"`
}

// SourceConfig is one format's document bundle.
type SourceConfig struct {
	Format  string `yaml:"format"`
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// OutputConfig defines where results are written. File names are relative
// to Dir unless absolute. An empty SQLite name disables the database export.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	RawCSV   string `yaml:"raw_csv"`
	CleanCSV string `yaml:"clean_csv"`
	SQLite   string `yaml:"sqlite"`
	Report   string `yaml:"report"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ProcessingConfig tunes the extraction run.
type ProcessingConfig struct {
	ParallelFormats bool `yaml:"parallel_formats"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Team: TeamConfig{
			Name:    "Sri Lanka",
			Aliases: []string{"SL", "Sri Lankan", "Sri Lankans"},
		},
		Window: WindowConfig{StartDate: "2000-01-01"},
		Sources: []SourceConfig{
			{Format: "Test", Path: "data/tests_json.zip", Enabled: true},
			{Format: "ODI", Path: "data/odis_json.zip", Enabled: true},
			{Format: "T20", Path: "data/t20s_json.zip", Enabled: true},
		},
		Output: OutputConfig{
			Dir:      "outputs",
			RawCSV:   "sri_lanka_matches.csv",
			CleanCSV: "sri_lanka_matches_clean.csv",
			SQLite:   "sri_lanka_matches.sqlite",
			Report:   "cleaning_report.md",
		},
		HomeVenues: slices.Clone(DefaultHomeVenues),
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from CRICKET_* environment variables. Call
// Validate afterwards.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvTeam); ok && strings.TrimSpace(v) != "" {
		c.Team.Name = strings.TrimSpace(v)
	}

	if v, ok := os.LookupEnv(EnvWindowStart); ok && v != "" {
		c.Window.StartDate = strings.TrimSpace(v)
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := os.LookupEnv(EnvOutputDir); ok && v != "" {
		c.Output.Dir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Team.Name) == "" {
		return ErrMissingTeamName
	}

	if _, err := c.WindowStart(); err != nil {
		return err
	}

	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[models.Format]bool)

	for i, src := range c.Sources {
		if src.Path == "" {
			return fmt.Errorf("%w: sources[%d]", ErrSourceMissingPath, i)
		}

		format, ok := models.LookupFormat(src.Format)
		if !ok {
			return fmt.Errorf("%w: sources[%d] %q", ErrSourceUnknownFormat, i, src.Format)
		}

		if !src.Enabled {
			continue
		}

		if seen[format] {
			return fmt.Errorf("%w: %s", ErrDuplicateFormat, format)
		}

		seen[format] = true
	}

	if len(seen) == 0 {
		return ErrNoEnabledSources
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.RawCSV == "" || c.Output.CleanCSV == "" {
		return ErrMissingOutputFile
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// TeamModel returns the designated team.
func (c *Config) TeamModel() models.Team {
	return models.Team{Name: c.Team.Name, Aliases: c.Team.Aliases}
}

// WindowStart parses the window start date.
func (c *Config) WindowStart() (time.Time, error) {
	start, err := time.Parse(models.DateLayout, c.Window.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, c.Window.StartDate)
	}

	return start, nil
}

// GetEnabledSources returns only enabled sources.
func (c *Config) GetEnabledSources() []SourceConfig {
	var enabled []SourceConfig

	for _, src := range c.Sources {
		if src.Enabled {
			enabled = append(enabled, src)
		}
	}

	return enabled
}

// OutputPath resolves an output file name against output.dir. It returns ""
// for an empty name.
func (c *Config) OutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(c.Output.Dir, name)
}

// FormatOf returns the parsed format of a validated source.
func (s SourceConfig) FormatOf() models.Format {
	f, _ := models.LookupFormat(s.Format)
	return f
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Team: %s, Window: %s, Sources: %d, Output: %s}",
		c.Team.Name,
		c.Window.StartDate,
		len(c.GetEnabledSources()),
		c.Output.Dir,
	)
}
