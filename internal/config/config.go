// Package config loads vidsearch settings from config.yaml and
// VIDSEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Search  SearchConfig  `mapstructure:"search"`
	Player  PlayerConfig  `mapstructure:"player"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the Invidious instance settings
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	Type             string `mapstructure:"type"`   // all, video, playlist or channel
	Region           string `mapstructure:"region"` // ISO 3166 code, empty for instance default
	ClearOnSubmit    bool   `mapstructure:"clear_on_submit"`
	Thumbnails       bool   `mapstructure:"thumbnails"`
	ThumbnailWorkers int    `mapstructure:"thumbnail_workers"`
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command     string   `mapstructure:"command"` // empty for auto-detect
	Args        []string `mapstructure:"args"`
	URLTemplate string   `mapstructure:"url_template"` // %s is replaced by the video id
}

// CacheConfig holds thumbnail cache configuration
type CacheConfig struct {
	Dir    string        `mapstructure:"dir"` // empty for memory only
	MaxAge time.Duration `mapstructure:"max_age"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ListPercent int `mapstructure:"list_percent"` // width share of the results list
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "https://vid.puffyan.us",
			Timeout: 30 * time.Second,
		},
		Search: SearchConfig{
			Type:             "all",
			Thumbnails:       true,
			ThumbnailWorkers: 4,
		},
		Player: PlayerConfig{
			Args:        []string{},
			URLTemplate: "https://www.youtube.com/watch?v=%s",
		},
		Cache: CacheConfig{
			Dir:    defaultCachePath(),
			MaxAge: 30 * 24 * time.Hour,
		},
		UI: UIConfig{
			ListPercent: 50,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vidsearch", "vidsearch.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vidsearch", "vidsearch.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vidsearch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vidsearch")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "vidsearch", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vidsearch", "cache")
	}
}

// newViper creates a viper instance primed with defaults and env overrides.
// Defaults must be registered for AutomaticEnv to reach nested keys.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setValues(v.SetDefault, DefaultConfig())

	// Environment variable overrides, e.g. VIDSEARCH_SERVER_URL
	v.SetEnvPrefix("VIDSEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setValues writes every key of cfg through set, with snake_case names
func setValues(set func(key string, value any), cfg *Config) {
	set("server.url", cfg.Server.URL)
	set("server.timeout", cfg.Server.Timeout.String())

	set("search.type", cfg.Search.Type)
	set("search.region", cfg.Search.Region)
	set("search.clear_on_submit", cfg.Search.ClearOnSubmit)
	set("search.thumbnails", cfg.Search.Thumbnails)
	set("search.thumbnail_workers", cfg.Search.ThumbnailWorkers)

	set("player.command", cfg.Player.Command)
	set("player.args", cfg.Player.Args)
	set("player.url_template", cfg.Player.URLTemplate)

	set("cache.dir", cfg.Cache.Dir)
	set("cache.max_age", cfg.Cache.MaxAge.String())

	set("ui.list_percent", cfg.UI.ListPercent)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return Load(defaultConfigPath(), ".")
}

// Load reads config.yaml from the first of dirs that has one.
// A missing file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := newViper()
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside the app
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server.url must be an http(s) URL, got %q", c.Server.URL)
	}

	switch c.Search.Type {
	case "all", "video", "playlist", "channel":
	default:
		return fmt.Errorf("search.type must be one of all, video, playlist, channel; got %q", c.Search.Type)
	}

	if c.Search.ThumbnailWorkers < 1 {
		return fmt.Errorf("search.thumbnail_workers must be positive, got %d", c.Search.ThumbnailWorkers)
	}

	if c.UI.ListPercent < 20 || c.UI.ListPercent > 80 {
		return fmt.Errorf("ui.list_percent must be between 20 and 80, got %d", c.UI.ListPercent)
	}

	return nil
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) (string, error) {
	configFile := filepath.Join(defaultConfigPath(), "config.yaml")
	return configFile, SaveConfigAs(cfg, configFile)
}

// SaveConfigAs writes cfg to configFile as YAML
func SaveConfigAs(cfg *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setValues(v.Set, cfg)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
