package session

import (
	"sync"

	"github.com/hupe1980/agentbus/core"
)

// Session is an ordered conversation history.
type Session struct {
	ID       string
	Contents []core.Content
}

// Clone returns a deep enough copy; the contents slice is detached so the
// caller can append freely.
func (s *Session) Clone() *Session {
	contents := make([]core.Content, len(s.Contents))
	copy(contents, s.Contents)
	return &Session{ID: s.ID, Contents: contents}
}

// Store is the session persistence contract.
type Store interface {
	// Get returns an existing session or creates one lazily.
	Get(sessionID string) (*Session, error)
	// Append adds a content turn to the session, creating it if needed.
	Append(sessionID string, content core.Content) error
	// Create forces the creation (or reset) of a session.
	Create(sessionID string) (*Session, error)
}

// InMemoryStore is a volatile Store implementation keeping sessions in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Each returned session is cloned to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Session)}
}

// Get returns an existing session (clone) or creates a new one lazily.
func (s *InMemoryStore) Get(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.Clone(), nil
	}
	return s.createSessionLocked(sessionID).Clone(), nil
}

// Append adds a content turn to an existing or newly created session.
func (s *InMemoryStore) Append(sessionID string, content core.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = s.createSessionLocked(sessionID)
	}
	sess.Contents = append(sess.Contents, content)
	return nil
}

// Create forces the creation (or reset) of a session with the given id.
func (s *InMemoryStore) Create(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSessionLocked(sessionID).Clone(), nil
}

// createSessionLocked allocates and stores a new session; caller must already
// hold the write lock.
func (s *InMemoryStore) createSessionLocked(sessionID string) *Session {
	sess := &Session{ID: sessionID}
	s.sessions[sessionID] = sess
	return sess
}

// Ensure InMemoryStore implements Store.
var _ Store = (*InMemoryStore)(nil)
