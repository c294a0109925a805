package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all health-advisor configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Cache     CacheConfig     `yaml:"cache"`
	Storage   StorageConfig   `yaml:"storage"`
	Messaging MessagingConfig `yaml:"messaging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`

	// User id sent to the analysis service when a request does not carry one.
	DefaultUserID int64 `yaml:"default_user_id"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// AnalysisConfig points at the remote analysis and recommendation service.
// Timeout 0 disables the client timeout entirely.
type AnalysisConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Driver    string        `yaml:"driver"` // memory, redis
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`
}

// MessagingConfig enables submission events when RabbitMQURL is set.
type MessagingConfig struct {
	RabbitMQURL string `yaml:"rabbitmq_url"`
	Queue       string `yaml:"queue"`
}

type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Analysis: AnalysisConfig{
			BaseURL: "http://localhost:8081",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    24 * time.Hour,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "health_advisor.db",
		},
		Messaging: MessagingConfig{
			Queue: "health_submissions",
		},
		RateLimit: RateLimitConfig{
			Capacity: 5,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		DefaultUserID: 1,
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if addr := os.Getenv("HEALTH_ADVISOR_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if url := os.Getenv("ANALYSIS_BASE_URL"); url != "" {
		c.Analysis.BaseURL = url
	}
	if raw := os.Getenv("ANALYSIS_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid ANALYSIS_TIMEOUT %q: %w", raw, err)
		}
		c.Analysis.Timeout = d
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Cache.Driver = "redis"
		c.Cache.RedisAddr = addr
	}
	if path := os.Getenv("HEALTH_ADVISOR_DB"); path != "" {
		c.Storage.Driver = "sqlite"
		c.Storage.Path = path
	}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		c.Messaging.RabbitMQURL = url
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if raw := os.Getenv("DEFAULT_USER_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DEFAULT_USER_ID %q: %w", raw, err)
		}
		c.DefaultUserID = id
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}

	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Analysis.BaseURL == "" {
		return fmt.Errorf("analysis.base_url is required")
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit capacity and window must be positive")
	}
	return nil
}
