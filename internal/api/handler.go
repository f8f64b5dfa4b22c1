// Package api exposes the practice service over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/mathpractice/internal/practice"
	"github.com/abhisek/mathpractice/internal/problemgen"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Response messages shared with the web client.
const (
	msgMissingFields   = "Missing required fields"
	msgNotFound        = "Problem session not found"
	msgGenerateFailed  = "Failed to generate problem"
	msgSubmitFailed    = "Failed to submit answer"
	msgInvalidBody     = "Invalid request body"
	msgAnswerNotNumber = "userAnswer must be a number"
)

// Handler serves the /api routes.
type Handler struct {
	svc    *practice.Service
	logger *zap.Logger
}

// NewHandler creates a Handler. logger may be nil.
func NewHandler(svc *practice.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger.Named("api")}
}

// GenerateProblem handles POST /api/generate-problem.
func (h *Handler) GenerateProblem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.GenerateProblem(r.Context())
	if err != nil {
		h.logger.Error("generate problem", zap.Error(err), zap.Stringer("kind", practice.Kind(err)))
		Error(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}
	JSON(w, http.StatusOK, envelope{Success: true, Session: sess})
}

// submitRequest keeps both fields raw so that a missing or null field can
// be told apart from a wrongly typed one.
type submitRequest struct {
	SessionID  json.RawMessage `json:"sessionId"`
	UserAnswer json.RawMessage `json:"userAnswer"`
}

// SubmitAnswer handles POST /api/submit-answer.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if isAbsent(req.SessionID) || isAbsent(req.UserAnswer) {
		Error(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	var sessionID string
	if err := json.Unmarshal(req.SessionID, &sessionID); err != nil {
		Error(w, http.StatusBadRequest, "sessionId must be a string")
		return
	}
	if strings.TrimSpace(sessionID) == "" {
		Error(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	answer, err := parseAnswer(req.UserAnswer)
	if err != nil {
		Error(w, http.StatusBadRequest, msgAnswerNotNumber)
		return
	}

	sub, err := h.svc.SubmitAnswer(r.Context(), sessionID, answer)
	if err != nil {
		switch practice.Kind(err) {
		case practice.KindNotFound:
			Error(w, http.StatusNotFound, msgNotFound)
		case practice.KindInvalidInput:
			Error(w, http.StatusBadRequest, msgAnswerNotNumber)
		default:
			h.logger.Error("submit answer",
				zap.String("session_id", sessionID),
				zap.Error(err),
				zap.Stringer("kind", practice.Kind(err)),
			)
			Error(w, http.StatusInternalServerError, msgSubmitFailed)
		}
		return
	}
	JSON(w, http.StatusOK, envelope{Success: true, Submission: sub})
}

// Topics handles GET /api/topics.
func (h *Handler) Topics(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, envelope{Success: true, Topics: problemgen.Topics})
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseAnswer accepts a JSON number or a string holding one, such as the
// value of a text input.
func parseAnswer(raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
