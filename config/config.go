package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for config files whose extension is not
// .json, .yaml, .yml or .toml.
var ErrUnknownFormat = errors.New("unknown config format")

type Config struct {
	LogFile         string `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
	WatchFiles      bool   `json:"watch_files" yaml:"watch_files" toml:"watch_files"`
	HistoryFile     string `json:"history_file" yaml:"history_file" toml:"history_file"`
	HistorySize     int    `json:"history_size" yaml:"history_size" toml:"history_size"`
	MaxDisplayWidth int    `json:"max_display_width" yaml:"max_display_width" toml:"max_display_width"`
}

func Default() *Config {
	history := ""
	if dir := DataDir(); dir != "" {
		history = filepath.Join(dir, "history.db")
	}
	return &Config{
		LogLevel:    "info",
		WatchFiles:  true,
		HistoryFile: history,
		HistorySize: 10,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "txtedit", "settings.json")
}

// DataDir is where the editor keeps state that is not configuration.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "txtedit")
}

// Load reads the config at path, or ConfigPath() when path is empty. Keys
// missing from the file keep their Default() values; a missing file yields
// Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch format(path) {
	case "json":
		err = json.Unmarshal(data, cfg)
	case "yaml":
		err = yaml.Unmarshal(data, cfg)
	case "toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path in the format implied by its extension.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}
	var (
		data []byte
		err  error
	)
	switch format(path) {
	case "json":
		data, err = json.MarshalIndent(c, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(c)
	case "toml":
		data, err = toml.Marshal(c)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	if c.MaxDisplayWidth < 0 {
		return fmt.Errorf("max_display_width must not be negative, got %d", c.MaxDisplayWidth)
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}
