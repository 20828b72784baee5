package portal

import "sync"

// Session is the credential state a logged-in portal user carries between
// requests: the bearer token plus the user record the backend returned.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Role  string `json:"role"`
}

// SessionStore is the capability interface behind which session persistence
// is abstracted so any mechanism (memory, file, keyring) can back it.
type SessionStore interface {
	Get() (Session, bool)
	Set(Session) error
	Clear() error
}

// MemoryStore keeps the session in process memory. It is safe for concurrent
// use.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
	present bool
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.present
}

func (s *MemoryStore) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
	s.present = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.present = false
	return nil
}
