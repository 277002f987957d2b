package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/petshopzn/storefront-gateway/internal/domain"
)

// Store is durable key-value storage for sessions. Each slot holds the two
// entries persisted for a client: the bearer token and the serialized user
// record, written and cleared together.
type Store interface {
	Read(ctx context.Context, sid string) (*domain.Session, error)
	Write(ctx context.Context, sid string, sess *domain.Session, ttl time.Duration) error
	Clear(ctx context.Context, sid string) error
}

// decodeSession rebuilds a session from its persisted entries. Corrupt or
// half-written data degrades to no session rather than an error, so a bad
// slot never breaks session resolution.
func decodeSession(token, rawUser string) *domain.Session {
	if token == "" || rawUser == "" {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil
	}
	if !user.Role.Valid() {
		return nil
	}
	return &domain.Session{Token: token, User: &user}
}

type memoryEntry struct {
	token   string
	rawUser string
}

// MemoryStore keeps sessions in process memory. Used when no Redis address is
// configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Read returns the session stored under sid, or nil when absent or corrupt.
func (s *MemoryStore) Read(_ context.Context, sid string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeSession(entry.token, entry.rawUser), nil
}

// Write stores both session entries under sid.
func (s *MemoryStore) Write(_ context.Context, sid string, sess *domain.Session, _ time.Duration) error {
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[sid] = memoryEntry{token: sess.Token, rawUser: string(raw)}
	s.mu.Unlock()
	return nil
}

// Clear removes the slot.
func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.entries, sid)
	s.mu.Unlock()
	return nil
}

// put injects raw entries, bypassing Write's marshalling. Test hook for
// simulating corrupt persisted data.
func (s *MemoryStore) put(sid, token, rawUser string) {
	s.mu.Lock()
	s.entries[sid] = memoryEntry{token: token, rawUser: rawUser}
	s.mu.Unlock()
}
