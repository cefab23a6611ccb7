package conversation

import (
	"context"
	"sync"
)

// MemorySessionStore holds drafts in process. Used when no redis address
// is configured, and by tests.
type MemorySessionStore struct {
	mu     sync.Mutex
	drafts map[string]BookingDraft
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{drafts: make(map[string]BookingDraft)}
}

func (s *MemorySessionStore) Load(ctx context.Context, sessionID string) (*BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.drafts[sessionID]
	return &draft, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sessionID string, draft *BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[sessionID] = *draft
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, sessionID)
	return nil
}

var _ SessionStore = (*MemorySessionStore)(nil)
