package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects and configures a provider.
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "openrouter" or
	// "offline". Offline needs no key and serves built-in problems.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`

	// Retry applies only when MaxAttempts > 1.
	Retry RetryConfig `yaml:"retry"`
}

type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// RetryConfig is the backoff schedule used by WithRetry.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig uses Gemini Flash with a single attempt per request.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// providerSetting binds one provider's fields to their env variables.
type providerSetting struct {
	name    string
	key     *string
	model   *string
	baseURL *string
	// stdKey is the vendor's conventional variable, used by discovery.
	stdKey string
}

// settings lists providers in discovery order.
func (c *Config) settings() []providerSetting {
	return []providerSetting{
		{"gemini", &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL, "GEMINI_API_KEY"},
		{"openai", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL, "OPENAI_API_KEY"},
		{"anthropic", &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL, "ANTHROPIC_API_KEY"},
		{"openrouter", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL, "OPENROUTER_API_KEY"},
	}
}

func envName(provider, field string) string {
	return "MATHPRACTICE_" + strings.ToUpper(provider) + "_" + field
}

// ApplyEnv overrides c from MATHPRACTICE_* variables, for example
// MATHPRACTICE_LLM_PROVIDER and MATHPRACTICE_OPENAI_BASE_URL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("MATHPRACTICE_LLM_PROVIDER"); v != "" {
		c.Provider = v
	}
	for _, s := range c.settings() {
		for field, dst := range map[string]*string{"API_KEY": s.key, "MODEL": s.model, "BASE_URL": s.baseURL} {
			if v := os.Getenv(envName(s.name, field)); v != "" {
				*dst = v
			}
		}
	}
	if n, err := strconv.Atoi(os.Getenv("MATHPRACTICE_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		c.Retry.MaxAttempts = n
	}
}

// DiscoverConfig returns defaults for the first provider whose standard
// key variable (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, s := range cfg.settings() {
		if k := os.Getenv(s.stdKey); k != "" {
			cfg.Provider = s.name
			*s.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// HasAPIKey reports whether the selected provider can be used as is.
func (c Config) HasAPIKey() bool {
	if c.Provider == "offline" {
		return true
	}
	for _, s := range c.settings() {
		if s.name == c.Provider {
			return *s.key != ""
		}
	}
	return false
}

// Validate reports an unknown provider or a missing key.
func (c Config) Validate() error {
	if c.Provider == "offline" {
		return nil
	}
	for _, s := range c.settings() {
		if s.name != c.Provider {
			continue
		}
		if *s.key == "" {
			return fmt.Errorf("%s is required for the %s provider", envName(s.name, "API_KEY"), s.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider %q", c.Provider)
}
