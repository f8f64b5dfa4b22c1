package llm

import (
	"context"
	"strings"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"MATHPRACTICE_LLM_PROVIDER", "MATHPRACTICE_LLM_MAX_ATTEMPTS",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" || cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("MATHPRACTICE_LLM_PROVIDER", "openrouter")
	t.Setenv("MATHPRACTICE_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("MATHPRACTICE_OPENROUTER_MODEL", "meta-llama/llama-3-8b")
	t.Setenv("MATHPRACTICE_ANTHROPIC_BASE_URL", "http://proxy")
	t.Setenv("MATHPRACTICE_LLM_MAX_ATTEMPTS", "3")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or" || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Fatalf("openrouter settings not applied: %+v", cfg)
	}
	if cfg.Anthropic.BaseURL != "http://proxy" {
		t.Fatalf("anthropic base url = %q", cfg.Anthropic.BaseURL)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestApplyEnv_IgnoresBadAttempts(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("MATHPRACTICE_LLM_MAX_ATTEMPTS", "zero")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("max attempts = %d, want 1", cfg.Retry.MaxAttempts)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected nothing without keys")
	}

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("expected openai to win over anthropic, got %+v", cfg)
	}
	if cfg.Anthropic.APIKey != "" {
		t.Fatal("only the chosen provider's key should be set")
	}
}

func TestValidateAndHasAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
		hasKey  bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, "MATHPRACTICE_GEMINI_API_KEY", false},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, "", true},
		{"openai without key", Config{Provider: "openai"}, "MATHPRACTICE_OPENAI_API_KEY", false},
		{"offline", Config{Provider: "offline"}, "", true},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
			}
			if got := tt.cfg.HasAPIKey(); got != tt.hasKey {
				t.Fatalf("HasAPIKey = %v, want %v", got, tt.hasKey)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "offline"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "offline" {
		t.Fatalf("model = %q", p.Model())
	}
	if _, ok := p.(*recorder); !ok {
		t.Fatalf("single attempt should not add retries, got %T", p)
	}

	cfg.Retry.MaxAttempts = 2
	p, _ = NewProvider(context.Background(), cfg, nil, nil)
	if _, ok := p.(*retrying); !ok {
		t.Fatalf("expected retry wrapper, got %T", p)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "openai"}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
