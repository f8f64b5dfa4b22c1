package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-mini": "gpt-4o-mini",
}

// OpenAI is a Provider for the Chat Completions API. With a BaseURL it
// also serves any compatible endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	return newOpenAICompatible("openai", cfg)
}

func newOpenAICompatible(name string, cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(name + " API key is required")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(conf),
		model:  resolveModel(cfg.Model, openaiAliases),
		name:   name,
	}, nil
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:               o.model,
		MaxCompletionTokens: p.MaxTokens,
		Temperature:         float32(p.Temperature),
	}
	if p.System != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.User,
	})
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, o.mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Provider: o.name, Kind: KindEmpty}
	}

	choice := resp.Choices[0]
	return finish(o.name, &Completion{
		Text:  choice.Message.Content,
		Model: resp.Model,
		Usage: Usage{Input: resp.Usage.PromptTokens, Output: resp.Usage.CompletionTokens},
	}, choice.FinishReason == openai.FinishReasonLength)
}

func (o *OpenAI) mapError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return errorFromStatus(o.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return errorFromStatus(o.name, reqErr.HTTPStatusCode, nil, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return &Error{Provider: o.name, Kind: KindUnavailable, Err: err}
}
