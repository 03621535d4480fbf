// Package config loads rolechain configuration from defaults, an optional YAML file
// and ROLECHAIN_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys use "__",
// e.g. ROLECHAIN_LOG__LEVEL=debug.
const EnvPrefix = "ROLECHAIN_"

// Config is the application configuration.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Walker  WalkerConfig  `koanf:"walker"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=text json"`
}

// WalkerConfig configures ancestry walks started from the command line.
type WalkerConfig struct {
	DefaultDepth int `koanf:"default_depth" validate:"min=0,max=64"`
}

// MetricsConfig toggles the metrics dump after each command.
type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":            "info",
		"log.format":           "text",
		"walker.default_depth": 2,
		"metrics.enabled":      false,
	}
}

// Load reads configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// envKey maps ROLECHAIN_WALKER__DEFAULT_DEPTH to walker.default_depth.
func envKey(key, value string) (string, interface{}) {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(strings.ReplaceAll(key, "__", "."))
	return key, value
}
