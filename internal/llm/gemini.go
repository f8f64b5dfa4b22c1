package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// Gemini is a Provider for the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: resolveModel(cfg.Model, geminiAliases)}, nil
}

func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	conf := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(p.MaxTokens),
	}
	if p.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(p.Temperature))
	}
	if p.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.JSON {
		conf.ResponseMIMEType = "application/json"
	}

	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.User), conf)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, errorFromStatus("gemini", apiErr.Code, nil, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Error{Provider: "gemini", Kind: KindUnavailable, Err: err}
	}

	c := &Completion{Text: res.Text(), Model: g.model}
	if res.ModelVersion != "" {
		c.Model = res.ModelVersion
	}
	if u := res.UsageMetadata; u != nil {
		c.Usage = Usage{Input: int(u.PromptTokenCount), Output: int(u.CandidatesTokenCount)}
	}
	truncated := len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens
	return finish("gemini", c, truncated)
}
