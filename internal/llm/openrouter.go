package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouter creates a provider for OpenRouter, which speaks the
// OpenAI wire format.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenAI, error) {
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}
	return newOpenAICompatible("openrouter", OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: base,
	})
}
