// Package config loads bmjump's settings from ~/.config/bmjump/config.json,
// a .env file, and BMJUMP_* environment variables, in rising precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds application configuration.
type Config struct {
	Storage     StorageConfig `mapstructure:"storage" json:"storage"`
	Socket      string        `mapstructure:"socket" json:"socket"`
	OpenCommand string        `mapstructure:"open_command" json:"open_command"`
	Log         LogConfig     `mapstructure:"log" json:"log"`
	UI          UIConfig      `mapstructure:"ui" json:"ui"`
}

// StorageConfig selects where the gateway keeps the bookmark store.
type StorageConfig struct {
	Backend string `mapstructure:"backend" json:"backend"`
	Path    string `mapstructure:"path" json:"path"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file" json:"file"`
	Level string `mapstructure:"level" json:"level"`
}

// UIConfig places the overlay box on screen.
type UIConfig struct {
	WidthPercent int `mapstructure:"width_percent" json:"width_percent"`
	TopPercent   int `mapstructure:"top_percent" json:"top_percent"`
}

// Dir returns ~/.config/bmjump.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmjump"), nil
}

// DefaultFilePath returns the default config path: ~/.config/bmjump/config.json
func DefaultFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns the default configuration.
func Default() Config {
	dir, err := Dir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "bmjump")
	}
	return Config{
		Storage: StorageConfig{
			Backend: "auto",
			Path:    filepath.Join(dir, "bookmarks.json"),
		},
		Socket: defaultSocketPath(),
		Log: LogConfig{
			File:  filepath.Join(dir, "bmjump.log"),
			Level: "info",
		},
		UI: UIConfig{
			WidthPercent: 60,
			TopPercent:   15,
		},
	}
}

func defaultSocketPath() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "bmjump.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("bmjump-%d.sock", os.Getuid()))
}

// Load reads config from path, or from DefaultFilePath when path is empty.
// A missing file is created with defaults. Values from a .env file in the
// working directory and BMJUMP_* variables override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		var err error
		path, err = DefaultFilePath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}

	defaults := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// Non-fatal: fall back to defaults even if the file can't be written
		_ = Save(path, &defaults)
	}

	v := viper.New()
	setDefaults(v, defaults)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("BMJUMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Socket = expandHome(cfg.Socket)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("socket", d.Socket)
	v.SetDefault("open_command", d.OpenCommand)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ui.width_percent", d.UI.WidthPercent)
	v.SetDefault("ui.top_percent", d.UI.TopPercent)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "auto", "json", "sqlite":
	default:
		return fmt.Errorf("%w: storage.backend %q (want auto, json or sqlite)", ErrInvalid, c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is empty", ErrInvalid)
	}
	if c.UI.WidthPercent < 20 || c.UI.WidthPercent > 100 {
		return fmt.Errorf("%w: ui.width_percent %d out of range 20-100", ErrInvalid, c.UI.WidthPercent)
	}
	if c.UI.TopPercent < 0 || c.UI.TopPercent > 80 {
		return fmt.Errorf("%w: ui.top_percent %d out of range 0-80", ErrInvalid, c.UI.TopPercent)
	}
	return nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
