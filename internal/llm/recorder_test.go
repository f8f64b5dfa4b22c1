package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathpractice/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memEvents struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (m *memEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.events = append(m.events, data)
	return m.err
}

func TestRecorder_Success(t *testing.T) {
	s := NewScripted(Step{Text: problemJSON, Usage: Usage{Input: 12, Output: 7}})
	events := &memEvents{}
	core, logs := observer.New(zap.InfoLevel)

	p := WithRecorder(s, "scripted", events, zap.New(core))
	if _, err := p.Complete(context.Background(), Prompt{Purpose: PurposeProblem, System: "sys", User: "hi", JSON: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events.events))
	}
	e := events.events[0]
	if !e.Success || e.Purpose != "problem-gen" || e.Provider != "scripted" || e.Model != "scripted" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 || e.ResponseBody != problemJSON {
		t.Fatalf("unexpected event payload: %+v", e)
	}
	for _, part := range []string{"[system]\nsys", "[user]\nhi", "[format: json]"} {
		if !strings.Contains(e.RequestBody, part) {
			t.Fatalf("request body %q missing %q", e.RequestBody, part)
		}
	}
	if logs.FilterMessage("llm request").Len() != 1 {
		t.Fatalf("expected one info line, got %v", logs.All())
	}
}

func TestRecorder_Failure(t *testing.T) {
	s := NewScripted(Fail(unavailable()))
	events := &memEvents{}
	core, logs := observer.New(zap.InfoLevel)

	p := WithRecorder(s, "scripted", events, zap.New(core))
	if _, err := p.Complete(context.Background(), Prompt{Purpose: PurposeFeedback}); err == nil {
		t.Fatal("expected error")
	}
	if len(events.events) != 1 || events.events[0].Success || events.events[0].ErrorMessage == "" {
		t.Fatalf("expected one failed event, got %+v", events.events)
	}
	if events.events[0].Purpose != "feedback" {
		t.Fatalf("purpose = %q", events.events[0].Purpose)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Fatalf("expected one warn line, got %v", logs.All())
	}
}

func TestRecorder_StoreErrorIsNotFatal(t *testing.T) {
	s := NewScripted(Reply("ok"))
	events := &memEvents{err: errors.New("disk full")}
	core, logs := observer.New(zap.WarnLevel)

	p := WithRecorder(s, "scripted", events, zap.New(core))
	c, err := p.Complete(context.Background(), Prompt{})
	if err != nil || c.Text != "ok" {
		t.Fatalf("got %v, %v", c, err)
	}
	if logs.FilterMessage("store llm event").Len() != 1 {
		t.Fatalf("expected store failure to be logged, got %v", logs.All())
	}
}

func TestRecorder_NilEvents(t *testing.T) {
	p := WithRecorder(NewScripted(Reply("ok")), "scripted", nil, nil)
	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
