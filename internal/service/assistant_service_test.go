package service

import (
	"context"
	"testing"
	"time"

	"pos-intelligence-be/internal/dto"
	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/contract"
	"pos-intelligence-be/internal/repository/memory"
	"pos-intelligence-be/pkg/assistant/fusion"
	"pos-intelligence-be/pkg/assistant/guardrail"
	"pos-intelligence-be/pkg/assistant/intent"
	"pos-intelligence-be/pkg/assistant/reformulate"
	"pos-intelligence-be/pkg/assistant/retrieval"
	"pos-intelligence-be/pkg/assistant/sqlgen"
	"pos-intelligence-be/pkg/embedding"
	"pos-intelligence-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// scriptedProvider replays responses in order, repeating the last one.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (m *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	idx := m.calls
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.calls++
	return &llm.Completion{Content: m.responses[idx]}, nil
}

func (m *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (*llm.Completion, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type mockEmbedder struct{}

func (mockEmbedder) Generate(_ string, _ string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: make([]float32, embedding.Dimensions)},
	}, nil
}

type mockKnowledgeRepo struct {
	hits []*contract.RetrievalHit
}

func (m *mockKnowledgeRepo) Create(context.Context, *entity.KnowledgeDocument) error { return nil }
func (m *mockKnowledgeRepo) CreateBulk(context.Context, []*entity.KnowledgeDocument) error {
	return nil
}
func (m *mockKnowledgeRepo) Count(context.Context) (int64, error) { return 0, nil }

func (m *mockKnowledgeRepo) VectorSearch(_ context.Context, _ []float32, _ float64, _ int) ([]*contract.RetrievalHit, error) {
	return m.hits, nil
}

func (m *mockKnowledgeRepo) LexicalSearch(_ context.Context, _ string, _ int) ([]*contract.RetrievalHit, error) {
	return nil, nil
}

type mockInsightRepo struct {
	rows []map[string]interface{}
}

func (m *mockInsightRepo) ExecuteReadOnly(_ context.Context, _ string) ([]map[string]interface{}, error) {
	return m.rows, nil
}

type pipelineMocks struct {
	reformulateProvider *scriptedProvider
	classifyProvider    *scriptedProvider
	engineProvider      *scriptedProvider
	retrievalProvider   *scriptedProvider
	fusionProvider      *scriptedProvider
	insightRepo         *mockInsightRepo
	knowledgeRepo       *mockKnowledgeRepo
	store               *memory.LocalStore
}

func newTestService(m *pipelineMocks) IAssistantService {
	nop := logger.NewNopLogger()

	store := m.store
	if store == nil {
		store = memory.NewLocalStore(memory.Limits{MaxMessages: 20, MaxMessageChars: 2000, TTL: time.Minute})
		m.store = store
	}

	validator := guardrail.NewValidator(200, nop)
	reformulator := reformulate.NewReformulator(m.reformulateProvider, store, "large", 6, nop)
	classifier := intent.NewClassifier(m.classifyProvider, "fast", nop)
	engine := sqlgen.NewEngine(m.engineProvider, m.insightRepo, "large", 3, nop)
	retriever := retrieval.NewRetriever(mockEmbedder{}, m.retrievalProvider, m.knowledgeRepo, "large", retrieval.Options{
		Floor:                0.5,
		VectorWeight:         0.7,
		LexicalWeight:        0.3,
		BranchLimit:          20,
		FuseLimit:            6,
		LexicalFallbackLimit: 4,
	}, nop)
	synthesizer := fusion.NewSynthesizer(engine, retriever, m.fusionProvider, "fast", "large", nop)

	return NewAssistantService(validator, reformulator, classifier, engine, retriever, synthesizer, store, nop, nop)
}

func defaultMocks() *pipelineMocks {
	return &pipelineMocks{
		reformulateProvider: &scriptedProvider{responses: []string{""}},
		classifyProvider:    &scriptedProvider{responses: []string{"SQL"}},
		engineProvider:      &scriptedProvider{responses: []string{"SELECT 1"}},
		retrievalProvider:   &scriptedProvider{responses: []string{""}},
		fusionProvider:      &scriptedProvider{responses: []string{""}},
		insightRepo:         &mockInsightRepo{},
		knowledgeRepo:       &mockKnowledgeRepo{},
	}
}

func TestAskSQLPath(t *testing.T) {
	m := defaultMocks()
	m.engineProvider = &scriptedProvider{responses: []string{
		"SELECT name, current_price FROM product WHERE name ILIKE '%iPhone 15%'",
		"The iPhone 15 128GB costs LKR 192,000.",
	}}
	m.insightRepo = &mockInsightRepo{rows: []map[string]interface{}{
		{"name": "iPhone 15 128GB", "current_price": "192000.00"},
	}}
	svc := newTestService(m)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: "s1",
		Question:  "What is the price of iPhone 15?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "SQL", res.Intent)
	assert.Equal(t, "The iPhone 15 128GB costs LKR 192,000.", res.Answer)
	assert.False(t, res.Rejected)

	// Turn stored user-first.
	history, _ := m.store.History(context.Background(), "s1", 6)
	assert.Len(t, history, 2)
	assert.Equal(t, memory.RoleUser, history[0].Role)
	assert.Equal(t, "What is the price of iPhone 15?", history[0].Content)
	assert.Equal(t, memory.RoleAssistant, history[1].Role)
}

func TestAskRejectedLeavesNoTrace(t *testing.T) {
	m := defaultMocks()
	svc := newTestService(m)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: "s1",
		Question:  "DROP the order table",
	})

	assert.NoError(t, err)
	assert.True(t, res.Rejected)
	assert.Contains(t, res.Answer, "Security rejection")

	history, _ := m.store.History(context.Background(), "s1", 6)
	assert.Empty(t, history)
	assert.Zero(t, m.classifyProvider.calls)
	assert.Zero(t, m.engineProvider.calls)
}

func TestAskGreetingCannedReply(t *testing.T) {
	m := defaultMocks()
	svc := newTestService(m)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		SessionId: "s1",
		Question:  "hello",
	})

	assert.NoError(t, err)
	assert.Equal(t, "GREETING", res.Intent)
	assert.NotEmpty(t, res.Answer)
	// Keyword shortcut resolves without any engine call.
	assert.Zero(t, m.classifyProvider.calls)

	history, _ := m.store.History(context.Background(), "s1", 6)
	assert.Len(t, history, 2)
}

func TestAskBothPathFollowUp(t *testing.T) {
	m := defaultMocks()
	m.reformulateProvider = &scriptedProvider{responses: []string{"Why is Order 118 delayed?"}}
	m.classifyProvider = &scriptedProvider{responses: []string{"BOTH"}}
	m.engineProvider = &scriptedProvider{responses: []string{
		`SELECT c.service_name, os.status_name FROM "order" o JOIN courier c ON o.courier_id = c.courier_id JOIN order_status os ON o.status_id = os.status_id WHERE o.order_id = 118`,
	}}
	m.insightRepo = &mockInsightRepo{rows: []map[string]interface{}{
		{"service_name": "Koombiyo", "status_name": "Delayed"},
	}}
	m.knowledgeRepo = &mockKnowledgeRepo{hits: []*contract.RetrievalHit{
		{
			Id:           uuid.New(),
			DocumentType: "delivery_issue",
			Title:        "Koombiyo Courier Delays Jan 2026",
			Content:      "All orders via Koombiyo face delays Jan 4-8 due to vehicle breakdowns.",
			VectorScore:  0.82,
		},
	}}
	m.retrievalProvider = &scriptedProvider{responses: []string{
		"Koombiyo couriers face delays Jan 4-8 due to vehicle breakdowns.",
	}}
	m.fusionProvider = &scriptedProvider{responses: []string{
		"What is the reason for Koombiyo courier service delays?",
		"Order 118 is delayed because Koombiyo couriers face delays Jan 4-8 due to vehicle breakdowns.",
	}}

	svc := newTestService(m)
	ctx := context.Background()

	// Seed the conversation so "Why?" has something to refer to.
	assert.NoError(t, m.store.Save(ctx, "s1", memory.RoleUser, "What is the status of order 118?"))
	assert.NoError(t, m.store.Save(ctx, "s1", memory.RoleAssistant, "Order 118 is delayed"))

	res, err := svc.Ask(ctx, &dto.AskRequest{SessionId: "s1", Question: "Why?"})

	assert.NoError(t, err)
	assert.Equal(t, "BOTH", res.Intent)
	assert.Equal(t, "Why is Order 118 delayed?", res.StandaloneQuestion)
	assert.Contains(t, res.Answer, "Koombiyo")

	// refine + final synthesis on the fusion provider
	assert.Equal(t, 2, m.fusionProvider.calls)
	// single successful generation on the engine provider
	assert.Equal(t, 1, m.engineProvider.calls)

	history, _ := m.store.History(ctx, "s1", 6)
	assert.Len(t, history, 4)
	assert.Equal(t, "Why?", history[2].Content)
}

func TestGetHistoryAndClear(t *testing.T) {
	m := defaultMocks()
	svc := newTestService(m)
	ctx := context.Background()

	assert.NoError(t, m.store.Save(ctx, "s1", memory.RoleUser, "hello"))
	assert.NoError(t, m.store.Save(ctx, "s1", memory.RoleAssistant, "hi"))

	res, err := svc.GetHistory(ctx, "s1", 6)
	assert.NoError(t, err)
	assert.Len(t, res.Messages, 2)
	assert.Equal(t, "s1", res.SessionId)

	assert.NoError(t, svc.ClearSession(ctx, "s1"))
	res, err = svc.GetHistory(ctx, "s1", 6)
	assert.NoError(t, err)
	assert.Empty(t, res.Messages)
}
