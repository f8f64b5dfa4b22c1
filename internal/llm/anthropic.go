package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// Anthropic is a Provider backed by the Messages API.
type Anthropic struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic provider. SDK-level retries are
// disabled; wrap with WithRetry instead.
func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Anthropic{
		client: anthropic.NewClient(opts...),
		model:  resolveModel(cfg.Model, anthropicAliases),
	}, nil
}

func (a *Anthropic) Model() string { return a.model }

func (a *Anthropic) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(p.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.User)),
		},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}
	if p.Temperature > 0 {
		params.Temperature = anthropic.Float(p.Temperature)
	}
	// Messages has no plain JSON mode; the prompt asks for it instead.

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.Response != nil {
			return nil, errorFromStatus("anthropic", apiErr.StatusCode, apiErr.Response.Header, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Provider: "anthropic", Kind: KindUnavailable, Err: err}
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return finish("anthropic", &Completion{
		Text:  text.String(),
		Model: string(msg.Model),
		Usage: Usage{Input: int(msg.Usage.InputTokens), Output: int(msg.Usage.OutputTokens)},
	}, msg.StopReason == anthropic.StopReasonMaxTokens)
}

// finish applies the checks every provider shares on a successful call.
func finish(provider string, c *Completion, truncated bool) (*Completion, error) {
	if truncated {
		return nil, &Error{Provider: provider, Kind: KindTruncated}
	}
	if strings.TrimSpace(c.Text) == "" {
		return nil, &Error{Provider: provider, Kind: KindEmpty}
	}
	return c, nil
}

// resolveModel expands a short alias; unknown names are used verbatim.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
