package memory

import (
	"context"
	"time"

	"pos-intelligence-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// TruncationMarker is appended when a message exceeds MaxMessageChars.
	TruncationMarker = "... [truncated]"
)

// Message is one stored conversation turn. Immutable once stored.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Limits bounds a session: message count cap (oldest dropped), per-message
// character cap (truncated with marker), and rolling TTL refreshed on write.
type Limits struct {
	MaxMessages     int
	MaxMessageChars int
	TTL             time.Duration
}

// ConversationStore is the session-memory capability. Both the redis-backed
// store and the in-process fallback implement it with identical semantics.
type ConversationStore interface {
	Save(ctx context.Context, sessionID, role, content string) error
	History(ctx context.Context, sessionID string, window int) ([]Message, error)
	Clear(ctx context.Context, sessionID string) error
}

// FailoverStore routes every operation to redis when it answers a liveness
// probe, and to the in-process store otherwise. Unreachability never
// surfaces to the caller; the local copy is lost on restart, which is an
// accepted limitation of the degraded mode.
type FailoverStore struct {
	remote *RedisStore
	local  *LocalStore
	logger logger.ILogger
}

func NewFailoverStore(rdb *redis.Client, limits Limits, log logger.ILogger) *FailoverStore {
	var remote *RedisStore
	if rdb != nil {
		remote = NewRedisStore(rdb, limits)
	}
	return &FailoverStore{
		remote: remote,
		local:  NewLocalStore(limits),
		logger: log,
	}
}

func (s *FailoverStore) remoteUp(ctx context.Context) bool {
	if s.remote == nil {
		return false
	}
	return s.remote.Ping(ctx) == nil
}

func (s *FailoverStore) Save(ctx context.Context, sessionID, role, content string) error {
	if s.remoteUp(ctx) {
		if err := s.remote.Save(ctx, sessionID, role, content); err == nil {
			return nil
		} else {
			s.logger.Warn("memory", "redis save failed, using fallback", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}
	return s.local.Save(ctx, sessionID, role, content)
}

func (s *FailoverStore) History(ctx context.Context, sessionID string, window int) ([]Message, error) {
	if s.remoteUp(ctx) {
		history, err := s.remote.History(ctx, sessionID, window)
		if err == nil {
			return history, nil
		}
		s.logger.Warn("memory", "redis history failed, using fallback", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	return s.local.History(ctx, sessionID, window)
}

// Clear removes both copies unconditionally; a remote delete failure is
// logged and does not stop the local delete.
func (s *FailoverStore) Clear(ctx context.Context, sessionID string) error {
	if s.remote != nil {
		if err := s.remote.Clear(ctx, sessionID); err != nil {
			s.logger.Warn("memory", "redis clear failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}
	return s.local.Clear(ctx, sessionID)
}

// truncate enforces the per-message character cap, rune-safe.
func truncate(content string, maxChars int) string {
	if maxChars <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= maxChars {
		return content
	}
	return string(runes[:maxChars]) + TruncationMarker
}
