package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"pos-intelligence-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConversationStore(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)

	store := memory.NewRedisStore(client, memory.Limits{
		MaxMessages:     10,
		MaxMessageChars: 4000,
		TTL:             time.Minute,
	})

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx), "redis must be reachable for this test")

	sessionID := uuid.NewString()
	defer store.Clear(ctx, sessionID)

	// Write past the cap and confirm the list is trimmed to the newest 10.
	for i := 0; i < 15; i++ {
		role := memory.RoleUser
		if i%2 == 1 {
			role = memory.RoleAssistant
		}
		require.NoError(t, store.Save(ctx, sessionID, role, "message"))
	}

	history, err := store.History(ctx, sessionID, 50)
	require.NoError(t, err)
	assert.Len(t, history, 10)

	// Window smaller than the stored list returns only the tail.
	tail, err := store.History(ctx, sessionID, 4)
	require.NoError(t, err)
	assert.Len(t, tail, 4)

	require.NoError(t, store.Clear(ctx, sessionID))
	history, err = store.History(ctx, sessionID, 50)
	require.NoError(t, err)
	assert.Empty(t, history)
}
