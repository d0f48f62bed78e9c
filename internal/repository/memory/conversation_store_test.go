package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"pos-intelligence-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func testLimits() Limits {
	return Limits{
		MaxMessages:     20,
		MaxMessageChars: 2000,
		TTL:             time.Minute,
	}
}

func TestLocalStoreCapDropsOldest(t *testing.T) {
	limits := testLimits()
	limits.MaxMessages = 10
	store := NewLocalStore(limits)
	ctx := context.Background()

	// Save cap+5, expect exactly the most recent cap back, oldest first.
	for i := 0; i < 15; i++ {
		content := "message " + string(rune('a'+i))
		assert.NoError(t, store.Save(ctx, "s1", RoleUser, content))
	}

	history, err := store.History(ctx, "s1", 10)
	assert.NoError(t, err)
	assert.Len(t, history, 10)
	assert.Equal(t, "message f", history[0].Content)
	assert.Equal(t, "message o", history[9].Content)
}

func TestLocalStoreTruncation(t *testing.T) {
	limits := testLimits()
	limits.MaxMessageChars = 100
	store := NewLocalStore(limits)
	ctx := context.Background()

	long := strings.Repeat("x", 250)
	assert.NoError(t, store.Save(ctx, "s1", RoleAssistant, long))

	history, err := store.History(ctx, "s1", 1)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Len(t, history[0].Content, 100+len(TruncationMarker))
	assert.True(t, strings.HasSuffix(history[0].Content, TruncationMarker))
}

func TestLocalStoreShortMessageUntouched(t *testing.T) {
	store := NewLocalStore(testLimits())
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "s1", RoleUser, "short"))

	history, _ := store.History(ctx, "s1", 5)
	assert.Equal(t, "short", history[0].Content)
}

func TestLocalStoreWindow(t *testing.T) {
	store := NewLocalStore(testLimits())
	ctx := context.Background()

	for _, content := range []string{"one", "two", "three", "four"} {
		assert.NoError(t, store.Save(ctx, "s1", RoleUser, content))
	}

	history, err := store.History(ctx, "s1", 2)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "three", history[0].Content)
	assert.Equal(t, "four", history[1].Content)
}

func TestLocalStoreClear(t *testing.T) {
	store := NewLocalStore(testLimits())
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "s1", RoleUser, "hello"))
	assert.NoError(t, store.Clear(ctx, "s1"))

	history, err := store.History(ctx, "s1", 5)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestLocalStoreSessionsIsolated(t *testing.T) {
	store := NewLocalStore(testLimits())
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "s1", RoleUser, "for s1"))
	assert.NoError(t, store.Save(ctx, "s2", RoleUser, "for s2"))

	history, _ := store.History(ctx, "s2", 5)
	assert.Len(t, history, 1)
	assert.Equal(t, "for s2", history[0].Content)
}

func TestFailoverStoreWithoutRedis(t *testing.T) {
	// No redis client at all: every operation must still succeed in-process.
	store := NewFailoverStore(nil, testLimits(), logger.NewNopLogger())
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "s1", RoleUser, "hello"))
	assert.NoError(t, store.Save(ctx, "s1", RoleAssistant, "hi there"))

	history, err := store.History(ctx, "s1", 6)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, RoleAssistant, history[1].Role)

	assert.NoError(t, store.Clear(ctx, "s1"))
	history, err = store.History(ctx, "s1", 6)
	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestTruncateRuneSafe(t *testing.T) {
	out := truncate("දුරකථන මිල", 5)
	assert.Equal(t, 5+len([]rune(TruncationMarker)), len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, TruncationMarker))
}
