package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// validTimeframes mirrors the timeframes the engine accepts.
var validTimeframes = map[string]bool{"5m": true, "15m": true, "30m": true, "1h": true, "1d": true}

// Duration is a time.Duration that unmarshals from YAML strings such as
// "30s" or "5m", or from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int      `yaml:"port"`
		ReadTimeout     Duration `yaml:"read_timeout"`
		WriteTimeout    Duration `yaml:"write_timeout"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Engine struct {
		Indicators IndicatorParams    `yaml:"indicators"`
		Weights    map[string]float64 `yaml:"weights"`
		Threshold  float64            `yaml:"threshold"`
	} `yaml:"engine"`
	Cache struct {
		Capacity        int                 `yaml:"capacity"`
		CleanupInterval Duration            `yaml:"cleanup_interval"`
		TTL             map[string]Duration `yaml:"ttl"`
	} `yaml:"cache"`
	ResponseCache struct {
		Enabled bool     `yaml:"enabled"`
		TTL     Duration `yaml:"ttl"`
		Redis   struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"response_cache"`
	Publisher struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		Compression  string   `yaml:"compression"`
		RequiredAcks int      `yaml:"required_acks"`
		MaxAttempts  int      `yaml:"max_attempts"`
		WriteTimeout Duration `yaml:"write_timeout"`
		ReadTimeout  Duration `yaml:"read_timeout"`
		Async        bool     `yaml:"async"`
	} `yaml:"publisher"`
}

// IndicatorParams holds the lookback windows and smoothing constants of the
// indicator library. All windows count bars of the supplied series.
type IndicatorParams struct {
	SMAWindow       int       `yaml:"sma_window"`
	EMAWindow       int       `yaml:"ema_window"`
	RSIWindow       int       `yaml:"rsi_window"`
	MACDFast        int       `yaml:"macd_fast"`
	MACDSlow        int       `yaml:"macd_slow"`
	MACDSignal      int       `yaml:"macd_signal"`
	BollingerWindow int       `yaml:"bollinger_window"`
	BollingerK      float64   `yaml:"bollinger_k"`
	ATRWindow       int       `yaml:"atr_window"`
	TrendWindows    []int     `yaml:"trend_windows"`
	TrendWeights    []float64 `yaml:"trend_weights"`
}

// Default returns a configuration with the documented engine defaults. The
// feature weights and threshold are deliberate choices, not tuned constants;
// they can be replaced wholesale from YAML.
func Default() *Config {
	c := &Config{}
	c.Environment = "development"
	c.Server.Port = 8080
	c.Server.ReadTimeout = Duration(10 * time.Second)
	c.Server.WriteTimeout = Duration(10 * time.Second)
	c.Server.ShutdownTimeout = Duration(10 * time.Second)
	c.Logging.Level = "info"
	c.Logging.Format = "console"
	c.Logging.Output = "stdout"
	c.Metrics.Enabled = true
	c.Metrics.Path = "/metrics"
	c.Engine.Indicators = IndicatorParams{
		SMAWindow:       20,
		EMAWindow:       12,
		RSIWindow:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerWindow: 20,
		BollingerK:      2.0,
		ATRWindow:       14,
		TrendWindows:    []int{5, 10, 20, 30},
		TrendWeights:    []float64{0.4, 0.3, 0.2, 0.1},
	}
	c.Engine.Weights = map[string]float64{
		"rsi":       0.20,
		"macd":      0.20,
		"price_sma": 0.15,
		"price_ema": 0.10,
		"bollinger": 0.10,
		"trend":     0.10,
		"sentiment": 0.15,
	}
	c.Engine.Threshold = 0.2
	c.Cache.Capacity = 1024
	c.Cache.CleanupInterval = Duration(time.Minute)
	c.Cache.TTL = map[string]Duration{
		"5m":  Duration(30 * time.Second),
		"15m": Duration(time.Minute),
		"30m": Duration(2 * time.Minute),
		"1h":  Duration(5 * time.Minute),
		"1d":  Duration(15 * time.Minute),
	}
	c.ResponseCache.Enabled = true
	c.ResponseCache.TTL = Duration(30 * time.Second)
	c.Publisher.Compression = "gzip"
	c.Publisher.RequiredAcks = -1
	c.Publisher.MaxAttempts = 3
	c.Publisher.WriteTimeout = Duration(10 * time.Second)
	c.Publisher.ReadTimeout = Duration(10 * time.Second)
	return c
}

// Load reads and parses a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.ResponseCache.Redis.Enabled = true
		c.ResponseCache.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Publisher.Enabled = true
		c.Publisher.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Publisher.Topic = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid. A failure here is fatal and
// must be surfaced before any evaluation runs.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if err := c.Engine.Indicators.validate(); err != nil {
		return err
	}
	if len(c.Engine.Weights) == 0 {
		return fmt.Errorf("engine.weights cannot be empty")
	}
	total := 0.0
	for name, w := range c.Engine.Weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("engine.weights[%s] must be non-negative, got %v", name, w)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("engine.weights must sum to a non-zero total")
	}
	if c.Engine.Threshold <= 0 || c.Engine.Threshold >= 1 {
		return fmt.Errorf("engine.threshold must be in (0,1), got %v", c.Engine.Threshold)
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity must be positive")
	}
	for tf, ttl := range c.Cache.TTL {
		if !validTimeframes[tf] {
			return fmt.Errorf("cache.ttl: unknown timeframe %q", tf)
		}
		if ttl <= 0 {
			return fmt.Errorf("cache.ttl[%s] must be positive", tf)
		}
	}
	if c.Publisher.Enabled {
		if len(c.Publisher.Brokers) == 0 {
			return fmt.Errorf("publisher.brokers required when publisher is enabled")
		}
		if c.Publisher.Topic == "" {
			return fmt.Errorf("publisher.topic required when publisher is enabled")
		}
	}
	if c.ResponseCache.Redis.Enabled && c.ResponseCache.Redis.Addr == "" {
		return fmt.Errorf("response_cache.redis.addr required when redis is enabled")
	}
	return nil
}

// CacheTTL returns the computation-cache TTL for a timeframe.
func (c *Config) CacheTTL(tf string) time.Duration {
	if ttl, ok := c.Cache.TTL[tf]; ok {
		return time.Duration(ttl)
	}
	return time.Minute
}

func (p IndicatorParams) validate() error {
	windows := map[string]int{
		"sma_window":       p.SMAWindow,
		"ema_window":       p.EMAWindow,
		"rsi_window":       p.RSIWindow,
		"macd_fast":        p.MACDFast,
		"macd_slow":        p.MACDSlow,
		"macd_signal":      p.MACDSignal,
		"bollinger_window": p.BollingerWindow,
		"atr_window":       p.ATRWindow,
	}
	for name, w := range windows {
		if w <= 0 {
			return fmt.Errorf("engine.indicators.%s must be positive, got %d", name, w)
		}
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("engine.indicators: macd_fast must be less than macd_slow")
	}
	if p.BollingerK <= 0 {
		return fmt.Errorf("engine.indicators.bollinger_k must be positive")
	}
	if len(p.TrendWindows) == 0 {
		return fmt.Errorf("engine.indicators.trend_windows cannot be empty")
	}
	if len(p.TrendWindows) != len(p.TrendWeights) {
		return fmt.Errorf("engine.indicators: trend_windows and trend_weights must have equal length")
	}
	for i, w := range p.TrendWindows {
		if w <= 0 {
			return fmt.Errorf("engine.indicators.trend_windows[%d] must be positive", i)
		}
		if p.TrendWeights[i] <= 0 {
			return fmt.Errorf("engine.indicators.trend_weights[%d] must be positive", i)
		}
	}
	return nil
}
