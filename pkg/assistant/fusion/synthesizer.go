package fusion

import (
	"context"
	"fmt"

	"pos-intelligence-be/internal/constant"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/pkg/assistant/retrieval"
	"pos-intelligence-be/pkg/assistant/sqlgen"
	"pos-intelligence-be/pkg/llm"
)

const finalAnswerMaxTokens = 500

// Synthesizer handles questions needing both structured facts and a
// knowledge-base explanation: fetch rows, refine them into a one-sentence
// knowledge query, retrieve, then synthesize a single grounded answer.
type Synthesizer struct {
	engine     *sqlgen.Engine
	retriever  *retrieval.Retriever
	provider   llm.Provider
	fastModel  string
	largeModel string
	logger     logger.ILogger
}

func NewSynthesizer(engine *sqlgen.Engine, retriever *retrieval.Retriever, provider llm.Provider, fastModel, largeModel string, log logger.ILogger) *Synthesizer {
	return &Synthesizer{
		engine:     engine,
		retriever:  retriever,
		provider:   provider,
		fastModel:  fastModel,
		largeModel: largeModel,
		logger:     log,
	}
}

func (s *Synthesizer) Answer(ctx context.Context, question string) (string, error) {
	dataText := s.fetchData(ctx, question)

	optimized := s.refineQuery(ctx, question, dataText)
	kbContext := s.retriever.Answer(ctx, optimized)
	s.logger.Debug("fusion", "knowledge context retrieved", map[string]interface{}{
		"query": optimized,
	})

	completion, err := s.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.BothFinalAnswerSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.BothFinalUserTemplate, question, dataText, kbContext)},
	}, llm.WithModel(s.largeModel), llm.WithTemperature(0.1), llm.WithMaxTokens(finalAnswerMaxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to synthesize final answer: %w", err)
	}

	s.logger.Info("fusion", "token usage final answer", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	return completion.Content, nil
}

// fetchData renders the structured rows as text. Exhaustion degrades to the
// fixed raw-path message so the final synthesis can still explain from the
// knowledge side alone.
func (s *Synthesizer) fetchData(ctx context.Context, question string) string {
	rows, _, err := s.engine.RawRows(ctx, question)
	if err != nil {
		s.logger.Warn("fusion", "structured rows unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return sqlgen.ExhaustedRawMessage
	}
	return fmt.Sprintf("%v", rows)
}

// refineQuery converts rows into a one-sentence knowledge query, falling
// back to the original question when the refinement call fails.
func (s *Synthesizer) refineQuery(ctx context.Context, question, dataText string) string {
	completion, err := s.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.RefinePromptTemplate, question, dataText)},
	}, llm.WithModel(s.fastModel), llm.WithTemperature(0))
	if err != nil {
		s.logger.Warn("fusion", "query refinement failed, using original question", map[string]interface{}{
			"error": err.Error(),
		})
		return question
	}

	s.logger.Info("fusion", "token usage refine", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	return completion.Content
}
