package reformulate

import (
	"context"
	"errors"
	"testing"
	"time"

	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/memory"
	"pos-intelligence-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type mockProvider struct {
	response string
	err      error
	calls    int
}

func (m *mockProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.Completion{Content: m.response}, nil
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Completion, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newStoreWithHistory(t *testing.T, sessionId string, turns ...string) memory.ConversationStore {
	t.Helper()
	store := memory.NewLocalStore(memory.Limits{
		MaxMessages:     20,
		MaxMessageChars: 2000,
		TTL:             time.Minute,
	})
	for i, content := range turns {
		role := memory.RoleUser
		if i%2 == 1 {
			role = memory.RoleAssistant
		}
		assert.NoError(t, store.Save(context.Background(), sessionId, role, content))
	}
	return store
}

func TestReformulateEmptyHistoryFastPath(t *testing.T) {
	provider := &mockProvider{response: "should never be used"}
	store := newStoreWithHistory(t, "s1")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "Why is it delayed?", "s1")

	assert.Equal(t, "Why is it delayed?", out)
	assert.Zero(t, provider.calls)
}

func TestReformulateStandaloneQuestionSkipsRewrite(t *testing.T) {
	provider := &mockProvider{response: "should never be used"}
	store := newStoreWithHistory(t, "s1", "What is the price of iPhone 15?", "iPhone 15 costs LKR 192,000")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "List all smartphone models", "s1")

	assert.Equal(t, "List all smartphone models", out)
	assert.Zero(t, provider.calls)
}

func TestReformulateFollowUp(t *testing.T) {
	provider := &mockProvider{response: "Why is Order 118 delayed?"}
	store := newStoreWithHistory(t, "s1", "What is the status of order 118?", "Order 118 is delayed")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "Why?", "s1")

	assert.Equal(t, "Why is Order 118 delayed?", out)
	assert.Equal(t, 1, provider.calls)
}

func TestReformulateIdempotent(t *testing.T) {
	provider := &mockProvider{response: "Why is Order 118 delayed?"}
	store := newStoreWithHistory(t, "s1", "What is the status of order 118?", "Order 118 is delayed")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	first := r.Reformulate(context.Background(), "Why?", "s1")
	second := r.Reformulate(context.Background(), "Why?", "s1")

	assert.Equal(t, first, second)
}

func TestReformulateStripsPreamble(t *testing.T) {
	provider := &mockProvider{response: "Standalone query: Why is Order 118 delayed?"}
	store := newStoreWithHistory(t, "s1", "Order 118 status?", "Order 118 is delayed")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "Why?", "s1")

	assert.Equal(t, "Why is Order 118 delayed?", out)
}

func TestReformulateRejectsTooShortOutput(t *testing.T) {
	provider := &mockProvider{response: "ok"}
	store := newStoreWithHistory(t, "s1", "Order 118 status?", "Order 118 is delayed")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "Why?", "s1")

	assert.Equal(t, "Why?", out)
}

func TestReformulateFallsBackOnProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("backend down")}
	store := newStoreWithHistory(t, "s1", "Order 118 status?", "Order 118 is delayed")
	r := NewReformulator(provider, store, "large", 6, logger.NewNopLogger())

	out := r.Reformulate(context.Background(), "Why?", "s1")

	assert.Equal(t, "Why?", out)
}
