package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chatKeyPrefix = "chat:"
	pingTimeout   = 500 * time.Millisecond
)

// RedisStore keeps each session as a redis list of JSON-encoded messages.
// Append, trim and TTL refresh run in one pipeline so a session can never
// exceed its cap even under concurrent writers.
type RedisStore struct {
	client *redis.Client
	limits Limits
}

func NewRedisStore(client *redis.Client, limits Limits) *RedisStore {
	return &RedisStore{client: client, limits: limits}
}

func (s *RedisStore) key(sessionID string) string {
	return chatKeyPrefix + sessionID
}

// Ping is the liveness probe used by the failover store before routing an
// operation here. Bounded by its own short timeout so an unreachable redis
// degrades the request instead of stalling it.
func (s *RedisStore) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.client.Ping(probeCtx).Err()
}

func (s *RedisStore) Save(ctx context.Context, sessionID, role, content string) error {
	payload, err := json.Marshal(Message{
		Role:    role,
		Content: truncate(content, s.limits.MaxMessageChars),
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	key := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-s.limits.MaxMessages), -1)
	pipe.Expire(ctx, key, s.limits.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, sessionID string, window int) ([]Message, error) {
	if window <= 0 {
		return []Message{}, nil
	}
	raw, err := s.client.LRange(ctx, s.key(sessionID), int64(-window), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	history := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// A corrupt entry is skipped rather than failing the turn.
			continue
		}
		history = append(history, msg)
	}
	return history, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
