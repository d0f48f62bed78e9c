package retrieval

import (
	"context"
	"fmt"
	"strings"

	"pos-intelligence-be/internal/constant"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/contract"
	"pos-intelligence-be/pkg/embedding"
	"pos-intelligence-be/pkg/llm"
)

// NoInformationMessage is the fixed reply when neither branch finds
// anything, including the lexical-only fallback.
const NoInformationMessage = "I don't have relevant information about that in the knowledge base."

// Options bound the two search branches and the fused result set.
type Options struct {
	Floor                float64
	VectorWeight         float64
	LexicalWeight        float64
	BranchLimit          int
	FuseLimit            int
	LexicalFallbackLimit int
}

// Retriever answers knowledge questions by embedding the question, running
// the vector and lexical branches, fusing the scores, and synthesizing an
// answer from the top contexts.
type Retriever struct {
	embedder  embedding.Provider
	provider  llm.Provider
	knowledge contract.KnowledgeRepository
	model     string
	opts      Options
	logger    logger.ILogger
}

func NewRetriever(embedder embedding.Provider, provider llm.Provider, knowledge contract.KnowledgeRepository, model string, opts Options, log logger.ILogger) *Retriever {
	return &Retriever{
		embedder:  embedder,
		provider:  provider,
		knowledge: knowledge,
		model:     model,
		opts:      opts,
		logger:    log,
	}
}

// Answer runs the full retrieve-and-synthesize path. Retrieval failures are
// reported as a formatted string rather than an error so the turn always
// produces a reply.
func (r *Retriever) Answer(ctx context.Context, question string) string {
	hits, err := r.Retrieve(ctx, question)
	if err != nil {
		return fmt.Sprintf("Retrieval error: %v", err)
	}
	if len(hits) == 0 {
		return NoInformationMessage
	}

	contexts := make([]string, 0, len(hits))
	for _, hit := range hits {
		r.logger.Debug("retrieval", "match", map[string]interface{}{
			"title":         hit.Title,
			"vector_score":  hit.VectorScore,
			"lexical_score": hit.LexicalScore,
		})
		contexts = append(contexts, hit.Context())
	}

	completion, err := r.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: fmt.Sprintf(constant.RagSystemPromptTemplate, strings.Join(contexts, "\n\n"))},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.RagUserTemplate, question)},
	}, llm.WithModel(r.model))
	if err != nil {
		return fmt.Sprintf("Retrieval error: %v", err)
	}

	r.logger.Info("retrieval", "token usage", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	return completion.Content
}

// Retrieve returns the fused, ranked hits without synthesis.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]*contract.RetrievalHit, error) {
	embedded, err := r.embedder.Generate(question, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	vectorHits, err := r.knowledge.VectorSearch(ctx, embedded.Embedding.Values, r.opts.Floor, r.opts.BranchLimit)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	terms := SearchTerms(question)
	lexicalHits, err := r.knowledge.LexicalSearch(ctx, terms, r.opts.BranchLimit)
	if err != nil {
		return nil, fmt.Errorf("lexical search failed: %w", err)
	}

	fused := Fuse(vectorHits, lexicalHits, FuseOptions{
		Floor:         r.opts.Floor,
		VectorWeight:  r.opts.VectorWeight,
		LexicalWeight: r.opts.LexicalWeight,
		Limit:         r.opts.FuseLimit,
	})
	if len(fused) > 0 {
		r.logger.Info("retrieval", "fused results", map[string]interface{}{
			"count": len(fused),
		})
		return fused, nil
	}

	// Lexical-only rescue pass with a smaller cap.
	r.logger.Warn("retrieval", "no fused results, lexical fallback", map[string]interface{}{
		"terms": terms,
	})
	fallback, err := r.knowledge.LexicalSearch(ctx, terms, r.opts.LexicalFallbackLimit)
	if err != nil {
		return nil, fmt.Errorf("lexical fallback failed: %w", err)
	}
	return fallback, nil
}
