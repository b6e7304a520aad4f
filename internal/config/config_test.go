package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Judge.PollInterval != time.Second {
		t.Errorf("poll interval = %v, want 1s", cfg.Judge.PollInterval)
	}
	if cfg.Judge.PollTimeout != 30*time.Second {
		t.Errorf("poll timeout = %v, want 30s", cfg.Judge.PollTimeout)
	}
	if cfg.API.BaseURL != "https://leetcode.com" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
}

func TestLoadOverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("LEETCLI_DB", "/tmp/custom.db")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
cache:
  path: ${LEETCLI_DB}
  ttl: 10m
judge:
  poll_interval: 500ms
  poll_timeout: 5s
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Path != "/tmp/custom.db" {
		t.Errorf("path = %q, want expanded env value", cfg.Cache.Path)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("ttl = %v, want 10m", cfg.Cache.TTL)
	}
	if cfg.Judge.PollInterval != 500*time.Millisecond {
		t.Errorf("poll interval = %v", cfg.Judge.PollInterval)
	}
	// Unset keys keep their defaults.
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("api timeout = %v, want default", cfg.API.Timeout)
	}
}

func TestLoadZeroDurationsFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
cache:
  ttl: 0
judge:
  poll_interval: 0
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.Judge.PollInterval != time.Second {
		t.Errorf("poll interval = %v, want 1s", cfg.Judge.PollInterval)
	}
}
