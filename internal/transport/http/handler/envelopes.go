package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PushEnvelope wraps push dispatch responses: per-token gateway status.
type PushEnvelope struct {
	Tokens map[string]int `json:"tokens"`
}

// SuccessEnvelope wraps delete-user responses.
type SuccessEnvelope struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
