package domain

import (
	"sync"
	"time"
)

// State identifies a step in the consultation flow. Transitions only move
// forward through StateOrder or jump back to StateGreeting on reset.
type State string

const (
	StateGreeting  State = "greeting"
	StateSkinType  State = "skin_type"
	StateConcerns  State = "concerns"
	StateAgeRange  State = "age_range"
	StateRoutine   State = "routine"
	StateLifestyle State = "lifestyle"
	StateBudget    State = "budget"
	StateAllergies State = "allergies"
	StateAnalysis  State = "analysis"
	StateFollowup  State = "followup"
)

// StateOrder is the fixed linear ordering of the consultation.
var StateOrder = []State{
	StateGreeting,
	StateSkinType,
	StateConcerns,
	StateAgeRange,
	StateRoutine,
	StateLifestyle,
	StateBudget,
	StateAllergies,
	StateAnalysis,
	StateFollowup,
}

// Index returns the state's position in StateOrder, or -1 for unknown states.
func (s State) Index() int {
	for i, st := range StateOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// ChatMessage is one entry in a session's message log.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds all conversation state for one consultation.
// The embedded mutex serializes mutation of a single record; callers must
// hold it for the duration of one request and not retain the session after.
type Session struct {
	mu sync.Mutex

	ID             string
	State          State
	Profile        *Profile
	Messages       []ChatMessage
	Context        map[string]string
	Recommendation *Recommendation
	CreatedAt      time.Time
	LastActive     time.Time
}

// NewSession creates an empty session at the greeting state.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		State:      StateGreeting,
		Profile:    NewProfile(),
		Context:    make(map[string]string),
		CreatedAt:  now,
		LastActive: now,
	}
}

// Lock acquires the per-session mutex.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// Record appends a message to the log and bumps the activity timestamp.
func (s *Session) Record(role, content string) {
	s.Messages = append(s.Messages, ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	s.LastActive = time.Now()
}

// RecentMessages returns the last n messages from the log.
func (s *Session) RecentMessages(n int) []ChatMessage {
	if n >= len(s.Messages) {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// ResetConversation returns the session to the greeting state with a fresh
// profile. The identifier and message log are preserved.
func (s *Session) ResetConversation() {
	s.State = StateGreeting
	s.Profile = NewProfile()
	s.Recommendation = nil
	s.Context = make(map[string]string)
}
