package llm

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/mathpractice/internal/store"
	"go.uber.org/zap"
)

type recorder struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *zap.Logger
}

// WithRecorder logs every call and appends it to events. Failing to store
// an event is logged and does not fail the call. events may be nil.
func WithRecorder(p Provider, providerName string, events store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &recorder{inner: p, provider: providerName, events: events, logger: logger.Named("llm")}
}

func (r *recorder) Model() string { return r.inner.Model() }

func (r *recorder) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := r.inner.Complete(ctx, p)
	latency := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.Model(),
		Purpose:     string(p.Purpose),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: promptTranscript(p),
	}
	if c != nil {
		ev.Model = c.Model
		ev.InputTokens = c.Usage.Input
		ev.OutputTokens = c.Usage.Output
		ev.ResponseBody = c.Text
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Duration("latency", latency),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		r.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		r.logger.Info("llm request", fields...)
	}

	if r.events != nil {
		// The caller may already be gone; the event is still worth keeping.
		if serr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
			r.logger.Warn("store llm event", zap.Error(serr))
		}
	}
	return c, err
}

func promptTranscript(p Prompt) string {
	var b strings.Builder
	if p.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}
	b.WriteString("[user]\n")
	b.WriteString(p.User)
	if p.JSON {
		b.WriteString("\n\n[format: json]")
	}
	return b.String()
}
