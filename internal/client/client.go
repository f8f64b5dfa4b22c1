// Package client is a small HTTP client for the practice API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/mathpractice/internal/store"
)

// APIError is a {success:false} response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Client talks to a running mathpractice server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Generation waits on the model; keep well above typical latency.
		http: &http.Client{Timeout: 90 * time.Second},
	}
}

type envelope struct {
	Success    bool              `json:"success"`
	Session    *store.Session    `json:"session"`
	Submission *store.Submission `json:"submission"`
	Topics     []string          `json:"topics"`
	Error      string            `json:"error"`
}

// GenerateProblem requests a new problem session.
func (c *Client) GenerateProblem(ctx context.Context) (*store.Session, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/generate-problem", nil)
	if err != nil {
		return nil, err
	}
	if env.Session == nil {
		return nil, fmt.Errorf("generate problem: response has no session")
	}
	return env.Session, nil
}

// SubmitAnswer submits an answer for sessionID.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, answer float64) (*store.Submission, error) {
	body := map[string]any{"sessionId": sessionID, "userAnswer": answer}
	env, err := c.do(ctx, http.MethodPost, "/api/submit-answer", body)
	if err != nil {
		return nil, err
	}
	if env.Submission == nil {
		return nil, fmt.Errorf("submit answer: response has no submission")
	}
	return env.Submission, nil
}

// Topics lists the server's topic catalog.
func (c *Client) Topics(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/topics", nil)
	if err != nil {
		return nil, err
	}
	return env.Topics, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "unexpected response from server"}
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}
