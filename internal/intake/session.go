package intake

import "sync"

// Session accumulates the fields of one in-progress report.
// It is owned by a single user's conversation and discarded once terminal.
type Session struct {
	UserID      int64
	ChatID      int64
	State       State
	MediaPath   string
	MediaKind   MediaKind
	Latitude    float64
	Longitude   float64
	HasLocation bool
	Comment     string
}

// NewSession creates a fresh session positioned at the photo step
func NewSession(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		State:  StatePhoto,
	}
}

// Complete reports whether every field required for persistence is set.
// Partial sessions must never be persisted.
func (s *Session) Complete() bool {
	return s.MediaPath != "" && s.HasLocation && s.Comment != ""
}

// SessionStore keeps in-flight sessions keyed by user ID.
// The dispatch loop may interleave updates from different users, so access
// is guarded; handlers for the same user are never invoked concurrently.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for a user, if one exists
func (s *SessionStore) Get(userID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Put stores a session, overwriting any existing one for the same user
func (s *SessionStore) Put(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
}

// Delete removes the session for a user
func (s *SessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
