// Package practice implements the two request flows of the app: generating
// a problem session and grading an answer submission.
package practice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/mathpractice/internal/problemgen"
	"github.com/abhisek/mathpractice/internal/store"
	"go.uber.org/zap"
)

// Generator is the subset of problemgen the service depends on.
type Generator interface {
	problemgen.Generator
	problemgen.FeedbackWriter
}

// Service composes problem generation, grading and persistence. It holds
// no per-request state and is safe for concurrent use.
type Service struct {
	gen    Generator
	repo   store.ProblemRepo
	logger *zap.Logger
}

// NewService creates a Service. logger may be nil.
func NewService(gen Generator, repo store.ProblemRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, repo: repo, logger: logger.Named("practice")}
}

// GenerateProblem asks the model for a new problem and stores it as a
// session. Nothing is stored unless the model output parses and validates.
func (s *Service) GenerateProblem(ctx context.Context) (*store.Session, error) {
	p, err := s.gen.Generate(ctx)
	if err != nil {
		s.logger.Error("problem generation failed", zap.Error(err), rawField(err))
		return nil, &GenerationError{Op: "generate problem", Err: err}
	}

	sess, err := s.repo.CreateSession(ctx, p.ProblemText, p.FinalAnswer)
	if err != nil {
		s.logger.Error("saving session failed", zap.Error(err))
		return nil, &StoreError{Op: "create session", Err: err}
	}

	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("topic", p.Topic),
	)
	return sess, nil
}

// SubmitAnswer grades userAnswer against the stored session, asks the model
// for feedback, and stores the submission. A failed lookup or feedback call
// stores nothing.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID string, userAnswer float64) (*store.Submission, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if math.IsNaN(userAnswer) || math.IsInf(userAnswer, 0) {
		return nil, fmt.Errorf("%w: answer must be a finite number", ErrInvalidInput)
	}

	sess, err := s.repo.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("loading session failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &StoreError{Op: "get session", Err: err}
	}

	correct := problemgen.IsCorrect(userAnswer, sess.CorrectAnswer)

	feedback, err := s.gen.Feedback(ctx, problemgen.FeedbackInput{
		ProblemText:   sess.ProblemText,
		CorrectAnswer: sess.CorrectAnswer,
		UserAnswer:    userAnswer,
		IsCorrect:     correct,
	})
	if err != nil {
		s.logger.Error("feedback generation failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &GenerationError{Op: "generate feedback", Err: err}
	}

	sub, err := s.repo.CreateSubmission(ctx, sess.ID, userAnswer, correct, feedback)
	if err != nil {
		s.logger.Error("saving submission failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &StoreError{Op: "create submission", Err: err}
	}

	s.logger.Info("submission graded",
		zap.String("session_id", sess.ID),
		zap.String("submission_id", sub.ID),
		zap.Bool("is_correct", correct),
	)
	return sub, nil
}

// rawField attaches the raw model text of a malformed response to a log
// line. It is never returned to callers.
func rawField(err error) zap.Field {
	var mErr *problemgen.MalformedResponseError
	if errors.As(err, &mErr) {
		return zap.String("raw_response", mErr.Raw)
	}
	return zap.Skip()
}
