package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/apsara-ai/apsara-server/internal/domain"
	"github.com/apsara-ai/apsara-server/internal/session"
)

// Result is the outcome of one conversational turn.
type Result struct {
	Response        string
	SessionID       string
	State           domain.State
	Suggestions     []string
	Products        []domain.Product
	RequiresImage   bool
	ProfileComplete bool
}

// Engine wires the per-message pipeline: session lookup, entity extraction,
// profile accumulation, response generation and the state transition.
type Engine struct {
	store session.Store
	flow  *Flow
}

// New creates an engine over the given session store. products may be nil.
func New(store session.Store, products ProductRecommender, productLimit int) *Engine {
	return &Engine{
		store: store,
		flow:  NewFlow(products, productLimit),
	}
}

// ProcessMessage runs one turn of the consultation. Extraction and
// accumulation are total; only the catalog lookup inside the analysis step
// can fail, and it degrades to an empty product list.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, message string) Result {
	sess := e.store.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	if IsReset(message) {
		sess.Record("user", message)
		sess.ResetConversation()
		reply := "No problem, let's start fresh! " + questionFor(domain.StateGreeting)
		sess.Record("assistant", reply)
		slog.Info("conversation reset by phrase", "session_id", sess.ID)
		return Result{
			Response:    reply,
			SessionID:   sess.ID,
			State:       sess.State,
			Suggestions: []string{},
			Products:    []domain.Product{},
		}
	}

	sess.Record("user", message)
	entities := Extract(message)
	Accumulate(sess.Profile, entities)
	captureNotes(sess, message)

	reply := e.flow.Respond(ctx, sess, message, entities)
	sess.Record("assistant", reply.Text)
	e.flow.Advance(sess, message)

	slog.Debug("processed message",
		"session_id", sess.ID,
		"state", sess.State,
		"profile_complete", sess.Profile.Complete())

	return Result{
		Response:        reply.Text,
		SessionID:       sess.ID,
		State:           sess.State,
		Suggestions:     emptyIfNil(reply.Suggestions),
		Products:        reply.Products,
		RequiresImage:   sess.State == domain.StateAnalysis && strings.Contains(strings.ToLower(message), "photo"),
		ProfileComplete: sess.Profile.Complete(),
	}
}

// captureNotes records the raw answers to the free-text questions as opaque
// profile notes; the core never parses them further.
func captureNotes(sess *domain.Session, msg string) {
	text := strings.TrimSpace(msg)
	if text == "" {
		return
	}
	switch sess.State {
	case domain.StateLifestyle:
		sess.Profile.Lifestyle["notes"] = text
	case domain.StateBudget:
		sess.Profile.Budget = text
	case domain.StateAllergies:
		sess.Profile.Allergies = append(sess.Profile.Allergies, text)
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
