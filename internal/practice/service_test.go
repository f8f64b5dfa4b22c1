package practice

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/abhisek/mathpractice/internal/llm"
	"github.com/abhisek/mathpractice/internal/problemgen"
	"github.com/abhisek/mathpractice/internal/store"
	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T, responses ...llm.Step) (*Service, *llm.Scripted, *store.Store) {
	t.Helper()
	st := openTestStore(t)
	mock := llm.NewScripted(responses...)
	cfg := problemgen.DefaultConfig()
	cfg.Picker = problemgen.FixedTopic(problemgen.Topics[0])
	svc := NewService(problemgen.New(mock, cfg), st.ProblemRepo(), nil)
	return svc, mock, st
}

func problemResponse(text string, answer float64) llm.Step {
	b, _ := json.Marshal(map[string]any{"problem_text": text, "final_answer": answer})
	return llm.Reply(string(b))
}

func textResponse(s string) llm.Step {
	return llm.Reply(s)
}

func countSessions(t *testing.T, st *store.Store) int {
	t.Helper()
	sessions, err := st.ProblemRepo().ListSessions(context.Background(), 0)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	return len(sessions)
}

func countSubmissions(t *testing.T, st *store.Store, sessionID string) int {
	t.Helper()
	subs, err := st.ProblemRepo().ListSubmissions(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	return len(subs)
}

func TestGenerateProblem(t *testing.T) {
	svc, _, st := newTestService(t, problemResponse("Find 2+2", 4))

	sess, err := svc.GenerateProblem(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ProblemText != "Find 2+2" || sess.CorrectAnswer != 4 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.ID == "" || sess.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp: %+v", sess)
	}
	if n := countSessions(t, st); n != 1 {
		t.Fatalf("expected 1 stored session, got %d", n)
	}
}

func TestGenerateProblem_MalformedPersistsNothing(t *testing.T) {
	svc, _, st := newTestService(t, textResponse(`{"problem_text":"Find 2+2","final_answer":"four"}`))

	_, err := svc.GenerateProblem(context.Background())
	if Kind(err) != KindGeneration {
		t.Fatalf("expected generation failure, got %v (%s)", err, Kind(err))
	}
	if !errors.Is(err, problemgen.ErrMalformedResponse) {
		t.Fatalf("expected malformed response cause, got %v", err)
	}
	if n := countSessions(t, st); n != 0 {
		t.Fatalf("expected no stored session, got %d", n)
	}
}

func TestGenerateProblem_ProviderErrorPersistsNothing(t *testing.T) {
	svc, _, st := newTestService(t, llm.Fail(&llm.Error{Provider: "test", Kind: llm.KindUnavailable, Err: errors.New("down")}))

	_, err := svc.GenerateProblem(context.Background())
	if Kind(err) != KindGeneration {
		t.Fatalf("expected generation failure, got %v", err)
	}
	if n := countSessions(t, st); n != 0 {
		t.Fatalf("expected no stored session, got %d", n)
	}
}

func TestGenerateProblem_StoreFailure(t *testing.T) {
	svc, _, st := newTestService(t, problemResponse("Find 2+2", 4))
	st.Close()

	_, err := svc.GenerateProblem(context.Background())
	if Kind(err) != KindStore {
		t.Fatalf("expected store failure, got %v (%s)", err, Kind(err))
	}
}

func TestSubmitAnswer_Correct(t *testing.T) {
	svc, mock, st := newTestService(t,
		problemResponse("Find 2+2", 4),
		textResponse("  Great job! 2 + 2 makes 4.  "),
	)
	ctx := context.Background()

	sess, err := svc.GenerateProblem(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sub, err := svc.SubmitAnswer(ctx, sess.ID, 4)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !sub.IsCorrect {
		t.Error("expected correct answer")
	}
	if sub.FeedbackText != "Great job! 2 + 2 makes 4." {
		t.Errorf("expected trimmed feedback, got %q", sub.FeedbackText)
	}
	if sub.SessionID != sess.ID || sub.UserAnswer != 4 {
		t.Errorf("unexpected submission: %+v", sub)
	}
	if n := countSubmissions(t, st, sess.ID); n != 1 {
		t.Fatalf("expected 1 submission, got %d", n)
	}

	// The feedback prompt carries the server-computed verdict.
	prompt := mock.Prompts()[1].User
	want := problemgen.BuildFeedbackPrompt(problemgen.FeedbackInput{
		ProblemText: "Find 2+2", CorrectAnswer: 4, UserAnswer: 4, IsCorrect: true,
	})
	if prompt != want {
		t.Errorf("unexpected feedback prompt:\n%s", prompt)
	}
}

func TestSubmitAnswer_IncorrectAndResubmit(t *testing.T) {
	svc, _, st := newTestService(t,
		problemResponse("Find 10 + 0.01", 10),
		textResponse("Almost! Check the decimal place."),
		textResponse("Well done."),
	)
	ctx := context.Background()

	sess, err := svc.GenerateProblem(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wrong, err := svc.SubmitAnswer(ctx, sess.ID, 10.01)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if wrong.IsCorrect {
		t.Error("10.01 vs 10 must be graded incorrect")
	}

	right, err := svc.SubmitAnswer(ctx, sess.ID, 10.00999)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !right.IsCorrect {
		t.Error("10.00999 vs 10 must be graded correct")
	}
	if n := countSubmissions(t, st, sess.ID); n != 2 {
		t.Fatalf("expected 2 submissions, got %d", n)
	}
}

func TestSubmitAnswer_NotFound(t *testing.T) {
	svc, mock, _ := newTestService(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := svc.SubmitAnswer(context.Background(), id, 4)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("id %q: expected ErrNotFound, got %v", id, err)
		}
	}
	if len(mock.Prompts()) != 0 {
		t.Fatalf("expected no LLM calls for unknown session, got %d", len(mock.Prompts()))
	}
}

func TestSubmitAnswer_InvalidInput(t *testing.T) {
	svc, mock, _ := newTestService(t)

	tests := []struct {
		name   string
		id     string
		answer float64
	}{
		{"empty id", "", 1},
		{"blank id", "   ", 1},
		{"nan answer", uuid.NewString(), math.NaN()},
		{"inf answer", uuid.NewString(), math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitAnswer(context.Background(), tt.id, tt.answer)
			if Kind(err) != KindInvalidInput {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
	if len(mock.Prompts()) != 0 {
		t.Fatalf("expected no LLM calls, got %d", len(mock.Prompts()))
	}
}

func TestSubmitAnswer_FeedbackFailurePersistsNothing(t *testing.T) {
	svc, _, st := newTestService(t,
		problemResponse("Find 2+2", 4),
		llm.Fail(&llm.Error{Provider: "test", Kind: llm.KindRateLimited}),
	)
	ctx := context.Background()

	sess, err := svc.GenerateProblem(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = svc.SubmitAnswer(ctx, sess.ID, 4)
	if Kind(err) != KindGeneration {
		t.Fatalf("expected generation failure, got %v", err)
	}
	if n := countSubmissions(t, st, sess.ID); n != 0 {
		t.Fatalf("expected no submissions, got %d", n)
	}
}

func TestSubmitAnswer_EmptyFeedbackPersistsNothing(t *testing.T) {
	svc, _, st := newTestService(t,
		problemResponse("Find 2+2", 4),
		textResponse("   "),
	)
	ctx := context.Background()

	sess, err := svc.GenerateProblem(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = svc.SubmitAnswer(ctx, sess.ID, 5)
	if !errors.Is(err, problemgen.ErrEmptyFeedback) {
		t.Fatalf("expected ErrEmptyFeedback, got %v", err)
	}
	if n := countSubmissions(t, st, sess.ID); n != 0 {
		t.Fatalf("expected no submissions, got %d", n)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindUnknown},
		{errors.New("x"), KindUnknown},
		{ErrInvalidInput, KindInvalidInput},
		{ErrNotFound, KindNotFound},
		{&GenerationError{Op: "x", Err: errors.New("y")}, KindGeneration},
		{&StoreError{Op: "x", Err: errors.New("y")}, KindStore},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
