package server

import (
	"sync"

	"github.com/mobeloper/ai-rag-chatbot/internal/helper"
	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

// SessionStore keeps per-session conversation history for the standalone
// variant. Sessions are keyed by a client-supplied identifier so concurrent
// clients never share one history list. State is in-process only and lost on
// restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string][]models.ChatTurn
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]models.ChatTurn)}
}

// Resolve returns the session id to use, minting one when the client did not
// supply any.
func (s *SessionStore) Resolve(sessionID string) (string, error) {
	if sessionID != "" {
		return sessionID, nil
	}
	return helper.GenerateUUID()
}

// History returns a copy of the session's turns in order.
func (s *SessionStore) History(sessionID string) []models.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := s.sessions[sessionID]
	out := make([]models.ChatTurn, len(turns))
	copy(out, turns)
	return out
}

// Append records a completed exchange. Concurrent writers on one shared
// session id interleave their turn pairs; callers wanting isolation must use
// distinct session ids.
func (s *SessionStore) Append(sessionID string, turns ...models.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
}
