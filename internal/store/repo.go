package store

import (
	"context"
	"time"
)

// Session is a generated problem together with its correct answer.
// Sessions are written once and never updated.
type Session struct {
	ID            string    `json:"id"`
	ProblemText   string    `json:"problem_text"`
	CorrectAnswer float64   `json:"correct_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// Submission is one answer attempt against a Session.
type Submission struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	UserAnswer   float64   `json:"user_answer"`
	IsCorrect    bool      `json:"is_correct"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProblemRepo persists problem sessions and answer submissions.
type ProblemRepo interface {
	// CreateSession inserts a new session and returns it with its
	// generated ID and timestamp.
	CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*Session, error)

	// GetSession returns the session with the given ID, or ErrNotFound.
	GetSession(ctx context.Context, id string) (*Session, error)

	// CreateSubmission inserts a new submission for an existing session.
	CreateSubmission(ctx context.Context, sessionID string, userAnswer float64, isCorrect bool, feedbackText string) (*Submission, error)

	// ListSessions returns the most recent sessions, newest first.
	ListSessions(ctx context.Context, limit int) ([]Session, error)

	// ListSubmissions returns all submissions for a session, oldest first.
	ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for a single purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for a single model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
