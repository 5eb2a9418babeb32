package engine

import (
	"context"
	"strings"
	"unicode"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Reply is the rendered output for one conversational turn.
type Reply struct {
	Text        string
	Suggestions []string
	Products    []domain.Product
}

// ProductRecommender answers concern-ranked catalog queries. Failures are
// tolerated: the conversation degrades to an empty product list.
type ProductRecommender interface {
	Recommend(ctx context.Context, concerns []string, limit int) ([]domain.Product, error)
}

// stateHandler gives each conversation state its own completion predicate and
// response template. Adding a state means adding one handler, not another arm
// in a conditional chain.
type stateHandler interface {
	// Next is the single state that follows when the predicate holds.
	Next() domain.State
	// Complete reports whether this state's slot is filled or the user
	// signalled completion, evaluated after entity accumulation.
	Complete(p *domain.Profile, msg string) bool
	// Respond renders the acknowledgment or re-ask for this state.
	Respond(ctx context.Context, sess *domain.Session, msg string, entities Entities) Reply
}

// Flow dispatches each turn to the current state's handler.
type Flow struct {
	handlers map[domain.State]stateHandler
}

// NewFlow builds the fixed questionnaire flow. products may be nil; the
// analysis step then attaches no catalog products.
func NewFlow(products ProductRecommender, productLimit int) *Flow {
	return &Flow{handlers: map[domain.State]stateHandler{
		domain.StateGreeting:  greetingHandler{},
		domain.StateSkinType:  skinTypeHandler{},
		domain.StateConcerns:  concernsHandler{},
		domain.StateAgeRange:  ageRangeHandler{},
		domain.StateRoutine:   freeTextHandler{state: domain.StateRoutine, next: domain.StateLifestyle, ack: "Thanks for walking me through your routine. "},
		domain.StateLifestyle: freeTextHandler{state: domain.StateLifestyle, next: domain.StateBudget, ack: "Good to know! "},
		domain.StateBudget:    freeTextHandler{state: domain.StateBudget, next: domain.StateAllergies, ack: "Got it. "},
		domain.StateAllergies: allergiesHandler{},
		domain.StateAnalysis:  analysisHandler{products: products, limit: productLimit},
		domain.StateFollowup:  followupHandler{},
	}}
}

// Respond renders the reply for the session's current state. Out-of-flow
// messages (help, ingredient or product questions, "skip") are answered by
// the fallback handler when the state's slot was not filled this turn. The
// returned text is never empty.
func (f *Flow) Respond(ctx context.Context, sess *domain.Session, msg string, entities Entities) Reply {
	h := f.handlers[sess.State]
	if h == nil {
		return Reply{Text: analysisLeadIn}
	}
	if !h.Complete(sess.Profile, msg) {
		if reply, ok := fallbackReply(sess.State, msg, entities); ok {
			return reply
		}
	}
	reply := h.Respond(ctx, sess, msg, entities)
	if strings.TrimSpace(reply.Text) == "" {
		reply.Text = questionFor(sess.State)
	}
	return reply
}

// Advance moves the session forward by at most one state, evaluating the
// current (pre-transition) state's predicate. A single rich message can fill
// several slots but still moves one step per turn; later turns then complete
// immediately.
func (f *Flow) Advance(sess *domain.Session, msg string) domain.State {
	if h := f.handlers[sess.State]; h != nil && h.Complete(sess.Profile, msg) {
		if next := h.Next(); next != "" {
			sess.State = next
		}
	}
	return sess.State
}

var resetPhrases = []string{"start over", "restart", "reset"}

// IsReset reports whether the message is a conversation reset request.
func IsReset(msg string) bool {
	lower := strings.ToLower(msg)
	for _, p := range resetPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// --- completion predicate helpers ---

var skinTypeKeywords = []string{"oily", "dry", "combination", "normal", "sensitive"}

var noConcernSignals = []string{"none", "nothing", "no concerns", "good", "fine"}

var ageIndicators = []string{"teen", "twenty", "thirty", "forty", "fifty", "under", "over", "old", "age"}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// substantive reports whether the message has more than 2 non-whitespace
// characters, the bar for "a real answer was given" on free-text questions.
func substantive(msg string) bool {
	n := 0
	for _, r := range msg {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n > 2
}
