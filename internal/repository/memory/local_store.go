package memory

import (
	"context"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// LocalStore is the in-process degraded mode used while redis is
// unreachable. Same caps, same TTL, but scoped to this process lifetime.
type LocalStore struct {
	mu     sync.Mutex
	cache  *gocache.Cache
	limits Limits
}

func NewLocalStore(limits Limits) *LocalStore {
	return &LocalStore{
		cache:  gocache.New(limits.TTL, limits.TTL),
		limits: limits,
	}
}

func (s *LocalStore) Save(_ context.Context, sessionID, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []Message
	if cached, found := s.cache.Get(sessionID); found {
		history = cached.([]Message)
	}
	history = append(history, Message{
		Role:    role,
		Content: truncate(content, s.limits.MaxMessageChars),
	})
	if len(history) > s.limits.MaxMessages {
		history = history[len(history)-s.limits.MaxMessages:]
	}
	s.cache.Set(sessionID, history, s.limits.TTL)
	return nil
}

func (s *LocalStore) History(_ context.Context, sessionID string, window int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if window <= 0 {
		return []Message{}, nil
	}
	cached, found := s.cache.Get(sessionID)
	if !found {
		return []Message{}, nil
	}
	history := cached.([]Message)
	if len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]Message, len(history))
	copy(out, history)
	return out, nil
}

func (s *LocalStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionID)
	return nil
}
