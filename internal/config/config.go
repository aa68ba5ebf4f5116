package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration. Values come from an optional
// YAML file with environment variable overrides on top.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Weights   WeightsConfig   `yaml:"weights"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CacheConfig controls response caching.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RateLimitConfig controls per-IP rate limiting.
type RateLimitConfig struct {
	IPLimitPerMin   int `yaml:"ip_limit_per_min"`
	BurstMultiplier int `yaml:"burst_multiplier"`
}

// RedisConfig controls the optional Redis backend for rate limiting.
// An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// WeightsConfig allows overriding the built-in scoring weights. Keys
// must match the dimension keys of the respective scoring branch, and
// category weights are keyed by category number. Empty maps mean the
// defaults apply.
type WeightsConfig struct {
	Process    map[string]float64 `yaml:"process"`
	Results    map[string]float64 `yaml:"results"`
	Categories map[int]float64    `yaml:"categories"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			IPLimitPerMin:   60,
			BurstMultiplier: 2,
		},
	}
}

// Load builds the configuration from the optional YAML file at path
// (skipped when path is empty or the file does not exist) and then
// applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Redis.Addr = getEnvOrDefault("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvIntOrDefault("REDIS_DB", c.Redis.DB)
	c.RateLimit.IPLimitPerMin = getEnvIntOrDefault("RATE_LIMIT_PER_MIN", c.RateLimit.IPLimitPerMin)

	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Cache.TTL = d
		}
	}
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.RateLimit.IPLimitPerMin <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit.IPLimitPerMin)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
