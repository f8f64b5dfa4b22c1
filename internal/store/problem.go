package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// problemRepo implements ProblemRepo with ent's SQL builders.
type problemRepo struct {
	db      *sql.DB
	dialect string
}

var sessionColumns = []string{"id", "problem_text", "correct_answer", "created_at"}

var submissionColumns = []string{"id", "session_id", "user_answer", "is_correct", "feedback_text", "created_at"}

func (r *problemRepo) CreateSession(ctx context.Context, problemText string, correctAnswer float64) (*Session, error) {
	s := &Session{
		ID:            uuid.NewString(),
		ProblemText:   problemText,
		CorrectAnswer: correctAnswer,
		CreatedAt:     now(),
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(s.ID, s.ProblemText, s.CorrectAnswer, s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, unavailable("create session", err)
	}
	return s, nil
}

func (r *problemRepo) GetSession(ctx context.Context, id string) (*Session, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var s Session
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.ProblemText, &s.CorrectAnswer, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get session", err)
	}
	return &s, nil
}

func (r *problemRepo) CreateSubmission(ctx context.Context, sessionID string, userAnswer float64, isCorrect bool, feedbackText string) (*Submission, error) {
	sub := &Submission{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		UserAnswer:   userAnswer,
		IsCorrect:    isCorrect,
		FeedbackText: feedbackText,
		CreatedAt:    now(),
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(submissionsTable).
		Columns(submissionColumns...).
		Values(sub.ID, sub.SessionID, sub.UserAnswer, sub.IsCorrect, sub.FeedbackText, sub.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, unavailable("create submission", err)
	}
	return sub, nil
}

func (r *problemRepo) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	sel := entsql.Dialect(r.dialect).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list sessions", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.ProblemText, &s.CorrectAnswer, &s.CreatedAt); err != nil {
			return nil, unavailable("scan session", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list sessions", err)
	}
	return out, nil
}

func (r *problemRepo) ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(submissionColumns...).
		From(entsql.Table(submissionsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy(entsql.Asc("created_at")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list submissions", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.ID, &sub.SessionID, &sub.UserAnswer, &sub.IsCorrect, &sub.FeedbackText, &sub.CreatedAt); err != nil {
			return nil, unavailable("scan submission", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list submissions", err)
	}
	return out, nil
}

// now returns the current UTC time at the precision every backend keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
