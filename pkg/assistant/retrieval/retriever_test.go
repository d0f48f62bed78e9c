package retrieval

import (
	"context"
	"testing"

	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/contract"
	"pos-intelligence-be/pkg/embedding"
	"pos-intelligence-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockEmbedder struct{}

func (mockEmbedder) Generate(_ string, _ string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: make([]float32, embedding.Dimensions)},
	}, nil
}

type mockKnowledgeRepo struct {
	vectorHits   []*contract.RetrievalHit
	lexicalHits  []*contract.RetrievalHit
	fallbackHits []*contract.RetrievalHit

	lexicalCalls  int
	lexicalLimits []int
}

func (m *mockKnowledgeRepo) Create(context.Context, *entity.KnowledgeDocument) error { return nil }
func (m *mockKnowledgeRepo) CreateBulk(context.Context, []*entity.KnowledgeDocument) error {
	return nil
}
func (m *mockKnowledgeRepo) Count(context.Context) (int64, error) { return 0, nil }

func (m *mockKnowledgeRepo) VectorSearch(_ context.Context, _ []float32, _ float64, _ int) ([]*contract.RetrievalHit, error) {
	return m.vectorHits, nil
}

func (m *mockKnowledgeRepo) LexicalSearch(_ context.Context, _ string, limit int) ([]*contract.RetrievalHit, error) {
	m.lexicalCalls++
	m.lexicalLimits = append(m.lexicalLimits, limit)
	if m.lexicalCalls > 1 {
		return m.fallbackHits, nil
	}
	return m.lexicalHits, nil
}

type mockLLM struct {
	response string
	calls    int
}

func (m *mockLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	m.calls++
	return &llm.Completion{Content: m.response}, nil
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Completion, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func defaultOptions() Options {
	return Options{
		Floor:                0.5,
		VectorWeight:         0.7,
		LexicalWeight:        0.3,
		BranchLimit:          20,
		FuseLimit:            6,
		LexicalFallbackLimit: 4,
	}
}

func TestAnswerSynthesizesFromHits(t *testing.T) {
	repo := &mockKnowledgeRepo{
		vectorHits: []*contract.RetrievalHit{
			hit(uuid.New(), "iPhone 15 Specifications", 0.85, 0),
		},
	}
	provider := &mockLLM{response: "The iPhone 15 has a 6.1 inch OLED display."}
	r := NewRetriever(mockEmbedder{}, provider, repo, "large", defaultOptions(), logger.NewNopLogger())

	answer := r.Answer(context.Background(), "iPhone 15 specs?")

	assert.Equal(t, "The iPhone 15 has a 6.1 inch OLED display.", answer)
	assert.Equal(t, 1, provider.calls)
}

func TestAnswerNoResultsFixedReply(t *testing.T) {
	repo := &mockKnowledgeRepo{}
	provider := &mockLLM{response: "should not be called"}
	r := NewRetriever(mockEmbedder{}, provider, repo, "large", defaultOptions(), logger.NewNopLogger())

	answer := r.Answer(context.Background(), "warranty for a product we never sold")

	assert.Equal(t, NoInformationMessage, answer)
	assert.Zero(t, provider.calls)
}

func TestRetrieveLexicalFallback(t *testing.T) {
	repo := &mockKnowledgeRepo{
		fallbackHits: []*contract.RetrievalHit{
			hit(uuid.New(), "Return Policy", 0, 0.2),
		},
	}
	r := NewRetriever(mockEmbedder{}, &mockLLM{}, repo, "large", defaultOptions(), logger.NewNopLogger())

	hits, err := r.Retrieve(context.Background(), "return policy")

	assert.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, "Return Policy", hits[0].Title)
	// First lexical pass uses the branch limit, the rescue pass the smaller cap.
	assert.Equal(t, []int{20, 4}, repo.lexicalLimits)
}
