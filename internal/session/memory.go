package session

import "sync"

// Store owns every Session of the process.
//
// Get and Put exchange copies, so a caller mutates its own Session and
// publishes it with Put. Callers that read-modify-write a user's session hold
// Lock for that user for the whole sequence.
type Store interface {
	Get(userID int64) (*Session, bool)
	CreateOrReset(userID int64) *Session
	Put(s *Session)
	Lock(userID int64) (unlock func())
	Stats() Stats
}

// Stats is a point-in-time summary of the store.
type Stats struct {
	Sessions      int
	Authenticated int
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewMemoryStore constructs an in-memory Store. Entries are never evicted.
func NewMemoryStore() Store {
	return &memoryStore{entries: make(map[int64]*entry)}
}

func (m *memoryStore) slot(userID int64) *entry {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.entries[userID]; ok {
		return e
	}
	e = &entry{}
	m.entries[userID] = e
	return e
}

// Lock serializes work on a single user's session.
func (m *memoryStore) Lock(userID int64) func() {
	e := m.slot(userID)
	e.mu.Lock()
	return e.mu.Unlock
}

// Get returns a copy of the user's session if one was stored.
func (m *memoryStore) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[userID]
	if !ok || e.sess == nil {
		return nil, false
	}
	return e.sess.Clone(), true
}

// CreateOrReset stores a fresh START session for the user and returns a copy.
func (m *memoryStore) CreateOrReset(userID int64) *Session {
	e := m.slot(userID)
	s := New(userID)
	m.mu.Lock()
	e.sess = s
	m.mu.Unlock()
	return s.Clone()
}

// Put stores a copy of s under s.UserID.
func (m *memoryStore) Put(s *Session) {
	if s == nil {
		return
	}
	e := m.slot(s.UserID)
	cp := s.Clone()
	m.mu.Lock()
	e.sess = cp
	m.mu.Unlock()
}

// Stats counts stored and authenticated sessions.
func (m *memoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var st Stats
	for _, e := range m.entries {
		if e.sess == nil {
			continue
		}
		st.Sessions++
		if e.sess.Authenticated {
			st.Authenticated++
		}
	}
	return st
}
