package problemgen

import (
	"strings"
	"testing"
	"text/template"
)

func TestBuildProblemPrompt(t *testing.T) {
	topic := "RATE - rate as amount per unit; find rate, total, or units given two quantities"
	msg := BuildProblemPrompt(topic)

	if !strings.Contains(msg, "CHOSEN SUB-STRAND/MICRO-TOPIC (use this ONLY): "+topic+"\n") {
		t.Error("missing chosen topic line")
	}
	if !strings.Contains(msg, `"problem_text"`) || !strings.Contains(msg, `"final_answer"`) {
		t.Error("missing JSON output format")
	}
	if !strings.Contains(msg, "Singapore Primary 5 Mathematics Syllabus (2021)") {
		t.Error("missing syllabus reference")
	}
	if strings.Contains(msg, "<no value>") {
		t.Error("template rendered a missing field")
	}
}

func TestBuildProblemPrompt_Deterministic(t *testing.T) {
	for _, topic := range Topics {
		if BuildProblemPrompt(topic) != BuildProblemPrompt(topic) {
			t.Fatalf("prompt for %q is not deterministic", topic)
		}
	}
	if BuildProblemPrompt(Topics[0]) == BuildProblemPrompt(Topics[1]) {
		t.Fatal("different topics should produce different prompts")
	}
}

func TestBuildFeedbackPrompt_Correct(t *testing.T) {
	msg := BuildFeedbackPrompt(FeedbackInput{
		ProblemText:   "Siti walks 2.5 km. How many metres is that?",
		CorrectAnswer: 2500,
		UserAnswer:    2500,
		IsCorrect:     true,
	})

	for _, want := range []string{
		"You are a friendly and encouraging Primary 5 math tutor.",
		"Problem: Siti walks 2.5 km. How many metres is that?\n",
		"Correct Answer: 2500\n",
		"Student's Answer: 2500\n",
		"Is Correct: true\n",
		"age-appropriate for a 10-11 year old",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("feedback prompt missing %q", want)
		}
	}
}

func TestBuildFeedbackPrompt_Incorrect(t *testing.T) {
	msg := BuildFeedbackPrompt(FeedbackInput{
		ProblemText:   "p",
		CorrectAnswer: 0.75,
		UserAnswer:    -1.5,
		IsCorrect:     false,
	})

	if !strings.Contains(msg, "Correct Answer: 0.75\n") {
		t.Error("expected decimal correct answer")
	}
	if !strings.Contains(msg, "Student's Answer: -1.5\n") {
		t.Error("expected negative user answer")
	}
	if !strings.Contains(msg, "Is Correct: false\n") {
		t.Error("expected is-correct false")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{12.5, "12.5"},
		{10_000_000, "10000000"},
		{0.01, "0.01"},
		{-3.75, "-3.75"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMustRender_PanicsOnExecError(t *testing.T) {
	tmpl := template.Must(template.New("broken").Parse("{{.Missing}}"))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for a field the data does not have")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "render broken prompt") {
			t.Fatalf("unexpected panic value: %v", r)
		}
	}()
	mustRender(tmpl, struct{ Topic string }{"x"})
}
