package session

import "sync"

// Store is the process-wide mapping from session id to its ordered message
// sequence. Each session carries its own lock so appends to different
// sessions do not serialize; the registry lock only guards the map itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*record
}

type record struct {
	mu       sync.RWMutex
	messages []Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*record)}
}

func (s *Store) getRecord(sessionID string, create bool) *record {
	s.mu.RLock()
	rec := s.sessions[sessionID]
	s.mu.RUnlock()

	if rec != nil || !create {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rec = s.sessions[sessionID]; rec == nil {
		rec = &record{}
		s.sessions[sessionID] = rec
	}
	return rec
}

// Append adds a message to the session, creating the session on first use.
func (s *Store) Append(sessionID string, msg Message) {
	rec := s.getRecord(sessionID, true)
	rec.mu.Lock()
	rec.messages = append(rec.messages, msg)
	rec.mu.Unlock()
}

// Get returns a copy of the session's messages in append order. An absent
// session yields an empty slice, never an error.
func (s *Store) Get(sessionID string) []Message {
	rec := s.getRecord(sessionID, false)
	if rec == nil {
		return []Message{}
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()
	out := make([]Message, len(rec.messages))
	copy(out, rec.messages)
	return out
}

// Has reports whether the session exists. A session with zero messages still
// exists; Len cannot distinguish that from absence.
func (s *Store) Has(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

// Len returns the session's message count, 0 if absent.
func (s *Store) Len(sessionID string) int {
	rec := s.getRecord(sessionID, false)
	if rec == nil {
		return 0
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return len(rec.messages)
}

// Remove deletes the session and reports whether it existed.
func (s *Store) Remove(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// Clear removes every session and returns the prior session count.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.sessions)
	s.sessions = make(map[string]*record)
	return count
}

// Keys returns the current session ids. Order is unspecified and may differ
// between calls.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		keys = append(keys, id)
	}
	return keys
}
