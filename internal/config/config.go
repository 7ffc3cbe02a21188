// Package config loads trip-planner settings from defaults, a YAML file and TP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application settings.
type Config struct {
	DBPath            string   `mapstructure:"db_path"`
	CatalogPath       string   `mapstructure:"catalog_path"`
	DevMode           bool     `mapstructure:"dev_mode"`
	Port              int      `mapstructure:"port"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	// ServerURL, when set, sends saved-itinerary commands to a running server
	// instead of the local database.
	ServerURL string `mapstructure:"server_url"`
}

// EnvPrefix is prepended to every environment variable, e.g. TP_PORT.
const EnvPrefix = "TP"

// DefaultDir returns the directory searched for config.yaml: ~/.config/tp
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tp"), nil
}

// Load reads configuration. An explicit path must exist; otherwise config.yaml
// in DefaultDir is used when present. Environment variables override the file.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "")
	v.SetDefault("catalog_path", "")
	v.SetDefault("dev_mode", false)
	v.SetDefault("port", 8080)
	v.SetDefault("requests_per_minute", 120)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("server_url", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must not be negative, got %d", c.RequestsPerMinute)
	}
	return nil
}
