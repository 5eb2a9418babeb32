// Package api provides HTTP handlers for the consultation API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/apsara-ai/apsara-server/internal/analyzer"
	"github.com/apsara-ai/apsara-server/internal/engine"
	"github.com/apsara-ai/apsara-server/internal/session"
	"github.com/apsara-ai/apsara-server/internal/upload"
)

// Handler bundles the chat endpoints' dependencies.
type Handler struct {
	engine   *engine.Engine
	sessions session.Store
	uploads  *upload.Service
	scorer   analyzer.Analyzer
}

// NewHandler creates a Handler with its dependencies.
func NewHandler(eng *engine.Engine, sessions session.Store, uploads *upload.Service, scorer analyzer.Analyzer) *Handler {
	return &Handler{
		engine:   eng,
		sessions: sessions,
		uploads:  uploads,
		scorer:   scorer,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
