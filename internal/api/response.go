package api

import (
	"encoding/json"
	"net/http"

	"github.com/abhisek/mathpractice/internal/store"
)

// envelope is the body of every /api response.
type envelope struct {
	Success    bool              `json:"success"`
	Session    *store.Session    `json:"session,omitempty"`
	Submission *store.Submission `json:"submission,omitempty"`
	Topics     []string          `json:"topics,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"success":false,"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a {success:false, error} response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope{Success: false, Error: message})
}
