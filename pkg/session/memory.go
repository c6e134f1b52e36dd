package session

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// MemoryStore keeps sessions in a map guarded by a read-write mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewMemoryStore returns an empty store whose sessions live for ttl after
// their last use. A non-positive ttl uses [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if s.IsExpired() {
		m.remove(id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s expired", id)
	}
	s.ExpiresAt = time.Now().Add(m.ttl)
	return s, nil
}

func (m *MemoryStore) Set(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ExpiresAt = time.Now().Add(m.ttl)
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	m.remove(id)
	return nil
}

func (m *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if s.IsExpired() {
			m.remove(id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Janitor calls Cleanup every interval until ctx is done. onRemove, when
// not nil, receives the number of sessions removed by each pass.
func (m *MemoryStore) Janitor(ctx context.Context, interval time.Duration, onRemove func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Cleanup(ctx)
			if err == nil && n > 0 && onRemove != nil {
				onRemove(n)
			}
		}
	}
}

// remove must be called with mu held.
func (m *MemoryStore) remove(id string) {
	s := m.sessions[id]
	delete(m.sessions, id)
	s.Lock()
	s.Graph.Destroy()
	s.Unlock()
}

var _ Store = (*MemoryStore)(nil)
