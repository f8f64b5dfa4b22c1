// Package config loads application settings from defaults, an optional
// YAML file, and MATHPRACTICE_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mathpractice/internal/llm"
	"github.com/abhisek/mathpractice/internal/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      logging.Config `yaml:"log"`
	LLM      llm.Config     `yaml:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the database. An empty DSN means the default
// SQLite file under the user's data directory.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Log: logging.DefaultConfig(),
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("MATHPRACTICE_ADDR", c.Server.Addr)
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MATHPRACTICE_ADDR") == "" {
		c.Server.Addr = ":" + port
	}
	if origins := os.Getenv("MATHPRACTICE_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}
	c.Server.ShutdownTimeout = getEnvDuration("MATHPRACTICE_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Database.DSN = getEnv("MATHPRACTICE_DB", c.Database.DSN)

	c.Log.Level = getEnv("MATHPRACTICE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("MATHPRACTICE_LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnv("MATHPRACTICE_LOG_FILE", c.Log.File)
	c.Log.MaxSizeMB = getEnvInt("MATHPRACTICE_LOG_MAX_SIZE_MB", c.Log.MaxSizeMB)
	c.Log.MaxBackups = getEnvInt("MATHPRACTICE_LOG_MAX_BACKUPS", c.Log.MaxBackups)
	c.Log.MaxAgeDays = getEnvInt("MATHPRACTICE_LOG_MAX_AGE_DAYS", c.Log.MaxAgeDays)
	c.Log.Compress = getEnvBool("MATHPRACTICE_LOG_COMPRESS", c.Log.Compress)

	c.LLM.ApplyEnv()

	// Nothing explicit for the selected provider: fall back to whichever
	// standard provider key is set.
	if !c.LLM.HasAPIKey() && os.Getenv("MATHPRACTICE_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Retry = c.LLM.Retry
			c.LLM = discovered
		}
	}
}

// Validate checks server and logging settings. LLM credentials are checked
// separately by ValidateLLM because not every command needs a provider.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server address must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return errors.New("llm retry max_attempts must be at least 1")
	}
	return nil
}

// ValidateLLM checks that the selected LLM provider is usable.
func (c Config) ValidateLLM() error {
	return c.LLM.Validate()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
