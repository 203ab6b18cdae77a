package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  read_timeout: 45s
engine:
  threshold: 0.3
cache:
  ttl:
    5m: 10s
    1h: 10m
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Environment != "production" {
		t.Fatalf("environment = %q", c.Environment)
	}
	if c.Server.Port != 9090 {
		t.Fatalf("port = %d", c.Server.Port)
	}
	if time.Duration(c.Server.ReadTimeout) != 45*time.Second {
		t.Fatalf("read_timeout = %v", time.Duration(c.Server.ReadTimeout))
	}
	if c.Engine.Threshold != 0.3 {
		t.Fatalf("threshold = %v", c.Engine.Threshold)
	}
	if c.CacheTTL("5m") != 10*time.Second {
		t.Fatalf("ttl[5m] = %v", c.CacheTTL("5m"))
	}
	if c.CacheTTL("1h") != 10*time.Minute {
		t.Fatalf("ttl[1h] = %v", c.CacheTTL("1h"))
	}

	// Untouched defaults survive a partial file.
	if c.Engine.Indicators.SMAWindow != 20 {
		t.Fatalf("sma_window = %d, want default", c.Engine.Indicators.SMAWindow)
	}
	if len(c.Engine.Weights) == 0 {
		t.Fatalf("weights lost on load")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "server:\n  read_timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestCacheTTLFallback(t *testing.T) {
	c := Default()
	if c.CacheTTL("2h") != time.Minute {
		t.Fatalf("unknown timeframe should fall back to one minute")
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.Environment = "" }},
		{"threshold too high", func(c *Config) { c.Engine.Threshold = 1 }},
		{"threshold zero", func(c *Config) { c.Engine.Threshold = 0 }},
		{"negative weight", func(c *Config) { c.Engine.Weights["rsi"] = -0.1 }},
		{"empty weights", func(c *Config) { c.Engine.Weights = nil }},
		{"zero weight sum", func(c *Config) {
			c.Engine.Weights = map[string]float64{"rsi": 0, "macd": 0}
		}},
		{"macd fast not below slow", func(c *Config) { c.Engine.Indicators.MACDFast = 26 }},
		{"zero window", func(c *Config) { c.Engine.Indicators.RSIWindow = 0 }},
		{"trend weight length mismatch", func(c *Config) {
			c.Engine.Indicators.TrendWeights = []float64{1}
		}},
		{"zero cache capacity", func(c *Config) { c.Cache.Capacity = 0 }},
		{"unknown ttl timeframe", func(c *Config) { c.Cache.TTL["2h"] = Duration(time.Minute) }},
		{"non-positive ttl", func(c *Config) { c.Cache.TTL["1h"] = 0 }},
		{"publisher without brokers", func(c *Config) { c.Publisher.Enabled = true }},
		{"publisher without topic", func(c *Config) {
			c.Publisher.Enabled = true
			c.Publisher.Brokers = []string{"localhost:9092"}
		}},
		{"redis without addr", func(c *Config) { c.ResponseCache.Redis.Enabled = true }},
	}

	for _, tc := range cases {
		c := Default()
		tc.mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: staging\n")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "regime.signals")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Logging.Level != "debug" {
		t.Fatalf("log level = %q", c.Logging.Level)
	}
	if !c.Publisher.Enabled || len(c.Publisher.Brokers) != 2 {
		t.Fatalf("publisher not enabled from env: %+v", c.Publisher)
	}
	if c.Publisher.Topic != "regime.signals" {
		t.Fatalf("topic = %q", c.Publisher.Topic)
	}
}
