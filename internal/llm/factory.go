package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/mathpractice/internal/store"
	"go.uber.org/zap"
)

// NewProvider builds the provider cfg selects. Every call is recorded to
// events; retries are added on top when cfg.Retry allows more than one
// attempt, so each attempt is recorded separately.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *zap.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropic(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAI(cfg.OpenAI)
	case "gemini":
		base, err = NewGemini(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouter(cfg.OpenRouter)
	case "offline":
		base = NewOffline(uint64(time.Now().UnixNano()))
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	p := WithRecorder(base, cfg.Provider, events, logger)
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry, logger)
	}
	return p, nil
}
