package problemgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathpractice/internal/llm"
)

const testTopic = "PERCENTAGE - Finding a percentage part of a whole"

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Picker = FixedTopic(testTopic)
	return cfg
}

const validProblemJSON = `{
	"problem_text": "A bag costs $80. It is sold at 25% off. How much does Ali pay?",
	"final_answer": 60
}`

func TestGenerate_Valid(t *testing.T) {
	model := llm.NewScripted(llm.Reply(validProblemJSON))
	gen := New(model, testConfig())

	p, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FinalAnswer != 60 {
		t.Errorf("expected final answer 60, got %v", p.FinalAnswer)
	}
	if p.Topic != testTopic {
		t.Errorf("expected topic %q, got %q", testTopic, p.Topic)
	}
}

func TestGenerate_FencedResponse(t *testing.T) {
	raw := "```json\n" + validProblemJSON + "\n```"
	model := llm.NewScripted(llm.Reply(raw))
	gen := New(model, testConfig())

	p, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(p.ProblemText, "A bag costs $80.") {
		t.Errorf("unexpected text: %q", p.ProblemText)
	}
}

func TestGenerate_SendsTopicPrompt(t *testing.T) {
	model := llm.NewScripted(llm.Reply(validProblemJSON))
	gen := New(model, testConfig())

	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompts := model.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected 1 call, got %d", len(prompts))
	}
	req := prompts[0]
	if req.Purpose != llm.PurposeProblem || !req.JSON {
		t.Fatalf("expected a JSON problem-gen prompt, got %+v", req)
	}
	if req.User != BuildProblemPrompt(testTopic) {
		t.Error("request prompt does not match BuildProblemPrompt for the picked topic")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("expected max tokens %d, got %d", DefaultConfig().MaxTokens, req.MaxTokens)
	}
}

func TestGenerate_PickerSeesCatalog(t *testing.T) {
	var seen []string
	cfg := DefaultConfig()
	cfg.Picker = func(topics []string) string {
		seen = topics
		return topics[len(topics)-1]
	}
	model := llm.NewScripted(llm.Reply(validProblemJSON))

	p, err := New(model, cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != len(Topics) {
		t.Fatalf("picker saw %d topics, want %d", len(seen), len(Topics))
	}
	if p.Topic != Topics[len(Topics)-1] {
		t.Errorf("unexpected topic %q", p.Topic)
	}
}

func TestGenerate_NilPickerDefaultsToRandom(t *testing.T) {
	model := llm.NewScripted(llm.Reply(validProblemJSON))
	gen := New(model, Config{})

	p, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, topic := range Topics {
		if topic == p.Topic {
			found = true
		}
	}
	if !found {
		t.Errorf("topic %q not in catalog", p.Topic)
	}
}

func TestGenerate_LLMError(t *testing.T) {
	model := llm.NewScripted(llm.Fail(&llm.Error{Provider: "test", Kind: llm.KindUnavailable, Err: errors.New("down")}))
	gen := New(model, testConfig())

	_, err := gen.Generate(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := llm.KindOf(err); !ok || kind != llm.KindUnavailable {
		t.Fatalf("expected wrapped unavailable error, got %v", err)
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatal("provider errors must not be reported as malformed responses")
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	model := llm.NewScripted(llm.Reply(`{"problem_text":"x","final_answer":"42"}`))
	gen := New(model, testConfig())

	_, err := gen.Generate(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGenerate_StructuralValidatorRejectsBlankText(t *testing.T) {
	model := llm.NewScripted(llm.Reply(`{"problem_text":"   ","final_answer":1}`))
	gen := New(model, testConfig())

	_, err := gen.Generate(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError inside, got %T", err)
	}
	if valErr.Validator != "structural" {
		t.Errorf("expected structural validator, got %q", valErr.Validator)
	}
}

// maxAnswerValidator rejects answers above a threshold.
type maxAnswerValidator struct {
	max float64
}

func (v *maxAnswerValidator) Name() string { return "custom-max-answer" }

func (v *maxAnswerValidator) Validate(p *GeneratedProblem) *ValidationError {
	if p.FinalAnswer > v.max {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer too large",
		}
	}
	return nil
}

func TestGenerate_CustomValidator(t *testing.T) {
	model := llm.NewScripted(llm.Reply(validProblemJSON))
	cfg := testConfig()
	cfg.Validators = append(cfg.Validators, &maxAnswerValidator{max: 50})
	gen := New(model, cfg)

	_, err := gen.Generate(context.Background())
	if err == nil {
		t.Fatal("expected custom validator to reject")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if valErr.Validator != "custom-max-answer" {
		t.Errorf("expected custom-max-answer, got %q", valErr.Validator)
	}
}

func TestFeedback_TrimsText(t *testing.T) {
	model := llm.NewScripted(llm.Reply("\n  Well done! 25% of $80 is $20, so Ali pays $60.  \n"))
	gen := New(model, testConfig())

	in := FeedbackInput{ProblemText: "A bag...", CorrectAnswer: 60, UserAnswer: 60, IsCorrect: true}
	text, err := gen.Feedback(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Well done! 25% of $80 is $20, so Ali pays $60." {
		t.Errorf("unexpected feedback %q", text)
	}

	req := model.Prompts()[0]
	if req.Purpose != llm.PurposeFeedback || req.JSON {
		t.Errorf("expected a plain feedback prompt, got %+v", req)
	}
	if req.User != BuildFeedbackPrompt(in) {
		t.Error("request prompt does not match BuildFeedbackPrompt")
	}
	if req.MaxTokens != DefaultConfig().FeedbackMaxTokens {
		t.Errorf("expected feedback max tokens, got %d", req.MaxTokens)
	}
}

func TestFeedback_Empty(t *testing.T) {
	model := llm.NewScripted(llm.Reply("  "))
	gen := New(model, testConfig())

	_, err := gen.Feedback(context.Background(), FeedbackInput{})
	if !errors.Is(err, ErrEmptyFeedback) {
		t.Fatalf("expected ErrEmptyFeedback, got %v", err)
	}
}

func TestFeedback_LLMError(t *testing.T) {
	gen := New(llm.NewScripted(), testConfig())

	_, err := gen.Feedback(context.Background(), FeedbackInput{})
	if _, ok := llm.KindOf(err); !ok {
		t.Fatalf("expected provider error, got %v", err)
	}
}
