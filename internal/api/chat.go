package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/apsara-ai/apsara-server/internal/analyzer"
	"github.com/apsara-ai/apsara-server/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 10 << 20

// chatRequest is the conversational request body. "question" is accepted as
// a legacy alias of "message" for older frontends.
type chatRequest struct {
	Message   string `json:"message"`
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

func (r *chatRequest) userMessage() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Question
}

type chatResponse struct {
	Response        string           `json:"response"`
	SessionID       string           `json:"session_id"`
	State           string           `json:"state"`
	Suggestions     []string         `json:"suggestions"`
	Products        []domain.Product `json:"products"`
	RequiresImage   bool             `json:"requires_image"`
	ProfileComplete bool             `json:"profile_complete"`
}

// RegisterRoutes mounts the chat endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/chat", h.Chat)
	r.Get("/api/chat/session/{sessionID}", h.GetSession)
	r.Post("/api/chat/reset/{sessionID}", h.ResetSession)
	r.Post("/api/chat/analyze-image", h.AnalyzeImage)
	r.Get("/api/chat/export/{sessionID}", h.ExportRoutine)
}

// Chat processes one conversational turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := req.userMessage()
	if strings.TrimSpace(message) == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	result := h.engine.ProcessMessage(r.Context(), req.SessionID, message)

	products := result.Products
	if products == nil {
		products = []domain.Product{}
	}
	JSON(w, http.StatusOK, chatResponse{
		Response:        result.Response,
		SessionID:       result.SessionID,
		State:           string(result.State),
		Suggestions:     result.Suggestions,
		Products:        products,
		RequiresImage:   result.RequiresImage,
		ProfileComplete: result.ProfileComplete,
	})
}

// GetSession returns the session's state, profile, recent messages and the
// stored recommendation.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	JSON(w, http.StatusOK, map[string]interface{}{
		"session_id":      sess.ID,
		"state":           sess.State,
		"profile":         sess.Profile,
		"messages":        sess.RecentMessages(10),
		"recommendations": sess.Recommendation,
	})
}

// ResetSession deletes the session record entirely. A later message that
// re-supplies the identifier starts a brand-new session under it.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.sessions.Delete(sessionID)
	JSON(w, http.StatusOK, map[string]string{"message": "Session reset successfully"})
}

// AnalyzeImage stores an uploaded photo, runs the skin scorer on it and
// replaces the profile's skin type and concerns with the scorer's verdict.
func (h *Handler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = r.URL.Query().Get("session_id")
	}
	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	path, err := h.uploads.Save(file, header)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.scorer.Analyze(r.Context(), path)
	degraded := false
	if err != nil {
		// The scorer failing must not abort the turn; degrade to the fixed
		// low-confidence classification.
		slog.Warn("skin scorer failed, using fallback classification",
			"session_id", sessionID, "error", err)
		analysis = analyzer.Fallback()
		degraded = true
	}

	sess.Lock()
	sess.Profile.SkinType = strings.ToLower(analysis.SkinType)
	if len(analysis.Concerns) > 0 {
		concerns := make([]string, 0, len(analysis.Concerns))
		for _, c := range analysis.Concerns {
			concerns = append(concerns, strings.ToLower(c))
		}
		sess.Profile.Concerns = concerns
	}
	sess.State = domain.StateAnalysis
	sess.Unlock()

	JSON(w, http.StatusOK, map[string]interface{}{
		"response":   renderAnalysis(analysis, degraded),
		"analysis":   analysis,
		"session_id": sessionID,
	})
}

// ExportRoutine returns the profile and stored recommendation. Products are
// intentionally not re-fetched on export.
func (h *Handler) ExportRoutine(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
		return
	}

	sess.Lock()
	defer sess.Unlock()

	JSON(w, http.StatusOK, map[string]interface{}{
		"profile":         sess.Profile,
		"recommendations": sess.Recommendation,
		"products":        []domain.Product{},
		"notes":           "Remember to patch test and introduce products gradually!",
	})
}

func renderAnalysis(a *domain.Analysis, degraded bool) string {
	text := fmt.Sprintf(
		"\n📸 **Image Analysis Complete!**\n\n• **Skin Type:** %s\n• **Detected Concerns:** %s\n\n%s\n\nLet me create a complete routine based on this analysis...",
		capitalize(a.SkinType),
		strings.Join(a.Concerns, ", "),
		a.Recommendation,
	)
	if degraded {
		text += "\n\nThe photo was hard to read, so this is a low-confidence estimate. A clearer, well-lit photo will give better results."
	}
	return text
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
