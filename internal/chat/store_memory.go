package chat

import (
	"context"
	"sync"
	"time"
)

// --------------------------------------------------
// In-memory implementation for tests and local runs
// --------------------------------------------------

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Message
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]Message)}
}

func (s *MemoryStore) Append(ctx context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = time.Now()
	s.sessions[msg.SessionID] = append(s.sessions[msg.SessionID], *msg)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.sessions[sessionID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
