// Package config holds the prober's tunables: pool widths, per-call
// timeouts, domain allow-list, adult-keyword set, and the expiry sanity
// factor. Values layer defaults < YAML file < environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full tunable surface of the prober.
type Config struct {
	// Concurrency budgets. OuterWidth caps concurrent server probes;
	// InnerWidth caps concurrent catalog actions within one probe.
	OuterWidth int `yaml:"outer_width"`
	InnerWidth int `yaml:"inner_width"`

	// Per-call timeouts.
	AuthTimeout   time.Duration `yaml:"auth_timeout"`
	ActionTimeout time.Duration `yaml:"action_timeout"`
	DetailTimeout time.Duration `yaml:"detail_timeout"`

	// ExpirySanityFactor: an expiry timestamp above now×factor is treated as
	// a "never expires" sentinel rather than a real date. Inherited panel
	// convention; tunable because nobody knows the real server-side rule.
	ExpirySanityFactor int64 `yaml:"expiry_sanity_factor"`

	// AllowedTLDs is the playback-client domain allow-list
	// (empty = built-in default).
	AllowedTLDs []string `yaml:"allowed_tlds"`

	// Adult-content classification.
	AdultKeywords       []string `yaml:"adult_keywords"`
	ClassifySampleLimit int      `yaml:"classify_sample_limit"`

	// InsecureTLS skips certificate verification for legacy https panels.
	InsecureTLS bool `yaml:"insecure_tls"`

	// MetricsListen is an optional addr for the Prometheus /metrics
	// listener ("" = disabled).
	MetricsListen string `yaml:"metrics_listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OuterWidth:          5,
		InnerWidth:          3,
		AuthTimeout:         12 * time.Second,
		ActionTimeout:       15 * time.Second,
		DetailTimeout:       10 * time.Second,
		ExpirySanityFactor:  200,
		ClassifySampleLimit: 100,
	}
}

// Load returns defaults overridden by XTREAM_PROBE_* environment variables.
func Load() *Config {
	c := Default()
	c.applyEnv()
	return c
}

// LoadFile layers a YAML file over defaults, then the environment over both.
func LoadFile(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	c.OuterWidth = getEnvInt("XTREAM_PROBE_OUTER_WIDTH", c.OuterWidth)
	c.InnerWidth = getEnvInt("XTREAM_PROBE_INNER_WIDTH", c.InnerWidth)
	c.AuthTimeout = getEnvDuration("XTREAM_PROBE_AUTH_TIMEOUT", c.AuthTimeout)
	c.ActionTimeout = getEnvDuration("XTREAM_PROBE_ACTION_TIMEOUT", c.ActionTimeout)
	c.DetailTimeout = getEnvDuration("XTREAM_PROBE_DETAIL_TIMEOUT", c.DetailTimeout)
	if v := getEnvInt("XTREAM_PROBE_EXPIRY_SANITY_FACTOR", int(c.ExpirySanityFactor)); v > 0 {
		c.ExpirySanityFactor = int64(v)
	}
	c.AllowedTLDs = getEnvList("XTREAM_PROBE_ALLOWED_TLDS", c.AllowedTLDs)
	c.AdultKeywords = getEnvList("XTREAM_PROBE_ADULT_KEYWORDS", c.AdultKeywords)
	c.ClassifySampleLimit = getEnvInt("XTREAM_PROBE_CLASSIFY_SAMPLE", c.ClassifySampleLimit)
	c.InsecureTLS = getEnvBool("XTREAM_PROBE_INSECURE_TLS", c.InsecureTLS)
	c.MetricsListen = getEnv("XTREAM_PROBE_METRICS_LISTEN", c.MetricsListen)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
