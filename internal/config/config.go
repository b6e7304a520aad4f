// Package config handles YAML configuration loading with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config is the top-level CLI configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Cache CacheConfig `yaml:"cache"`
	Judge JudgeConfig `yaml:"judge"`
}

// APIConfig holds remote platform settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // per-request HTTP timeout
}

// CacheConfig holds local cache settings.
type CacheConfig struct {
	Path         string        `yaml:"path"` // SQLite file path or ":memory:"
	TTL          time.Duration `yaml:"ttl"`
	FrontMaxSize int           `yaml:"front_max_size"` // in-memory hot tier entry cap
}

// JudgeConfig holds judge polling settings.
type JudgeConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	PollTimeout  time.Duration `yaml:"poll_timeout"`
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnv replaces ${VAR} patterns with environment variable values.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := string(match[2 : len(match)-1])
		if val, ok := os.LookupEnv(varName); ok {
			return []byte(val)
		}
		return match
	})
}

// Dir returns the per-user configuration directory for the CLI.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "leetcli"), nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://leetcode.com",
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			TTL:          time.Hour,
			FrontMaxSize: 1_000,
		},
		Judge: JudgeConfig{
			PollInterval: time.Second,
			PollTimeout:  30 * time.Second,
		},
	}
}

// Load reads and parses a YAML config file, expanding environment variables.
// A missing file is not an error: defaults are returned so the CLI works
// without any prior setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	data = expandEnv(data)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = time.Hour
	}
	if cfg.Judge.PollInterval <= 0 {
		cfg.Judge.PollInterval = time.Second
	}
	if cfg.Judge.PollTimeout <= 0 {
		cfg.Judge.PollTimeout = 30 * time.Second
	}
	return cfg, nil
}
