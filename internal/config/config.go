// Package config handles server configuration: YAML file, environment
// overrides, and defaults. Flags are layered on top by the CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the carbondash server.
type Config struct {
	// Host and Port form the bind address. Defaults serve on all
	// interfaces, port 8050.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// DataDir is the dataset directory (manifest + CSV).
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RedisConfig enables the shared query cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// RateLimitConfig bounds the request rate. RPS <= 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		Host:     "0.0.0.0",
		Port:     8050,
		DataDir:  ".",
		LogLevel: "info",
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RPS:   50,
			Burst: 100,
		},
	}
}

// Load reads configuration: defaults, then an optional YAML file, then
// environment variables. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CARBONDASH_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("CARBONDASH_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CARBONDASH_PORT: %w", err)
		}
		c.Port = p
	}
	if v := os.Getenv("CARBONDASH_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("CARBONDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CARBONDASH_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("CARBONDASH_REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CARBONDASH_REDIS_TTL: %w", err)
		}
		c.Redis.TTL = ttl
	}
	return nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1 when rps is set")
	}
	return nil
}

// Addr returns the bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
