package sqlgen

import (
	"context"
	"fmt"
	"strings"

	"pos-intelligence-be/internal/constant"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/contract"
	"pos-intelligence-be/pkg/llm"
)

const (
	// ExhaustedMessage is returned after the retry budget is spent on the
	// answer path. Never an error: exhaustion is a normal outcome.
	ExhaustedMessage = "I couldn't process that. Please rephrase your question or contact support."

	// ExhaustedRawMessage is the raw-rows counterpart used by the fusion path.
	ExhaustedRawMessage = "I couldn't process that database request."
)

// forbiddenStatements guard the generated query itself: a candidate carrying
// one of these as a standalone word is treated as a failed attempt, not
// executed.
var forbiddenStatements = []string{"DROP", "DELETE", "UPDATE", "INSERT", "TRUNCATE", "ALTER", "CREATE", "GRANT", "REVOKE"}

// Attempt records one generation round for the audit trail.
type Attempt struct {
	Number int
	Query  string
	Err    string
}

// Engine answers questions about the structured store by generating a
// read-only query, executing it, and synthesizing prose from the rows.
// Generation failures feed the error back into the next prompt, bounded by
// maxAttempts.
type Engine struct {
	provider    llm.Provider
	insights    contract.InsightRepository
	model       string
	maxAttempts int
	logger      logger.ILogger
}

func NewEngine(provider llm.Provider, insights contract.InsightRepository, model string, maxAttempts int, log logger.ILogger) *Engine {
	return &Engine{
		provider:    provider,
		insights:    insights,
		model:       model,
		maxAttempts: maxAttempts,
		logger:      log,
	}
}

// Answer runs the full generate-execute-synthesize loop.
func (e *Engine) Answer(ctx context.Context, question string) (string, error) {
	rows, _, ok := e.execute(ctx, question)
	if !ok {
		return ExhaustedMessage, nil
	}

	completion, err := e.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SqlInsightSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf("User asked: %s\nDB results: %v.", question, rows)},
	}, llm.WithModel(e.model))
	if err != nil {
		return "", fmt.Errorf("failed to synthesize answer: %w", err)
	}

	e.logger.Info("sqlgen", "token usage answer", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})
	return completion.Content, nil
}

// RawRows runs generate-execute only and hands the rows to the caller.
// Used by the fusion path, which does its own synthesis.
func (e *Engine) RawRows(ctx context.Context, question string) ([]map[string]interface{}, []Attempt, error) {
	rows, attempts, ok := e.execute(ctx, question)
	if !ok {
		return nil, attempts, fmt.Errorf("%s", ExhaustedRawMessage)
	}
	return rows, attempts, nil
}

func (e *Engine) execute(ctx context.Context, question string) ([]map[string]interface{}, []Attempt, bool) {
	var attempts []Attempt
	var lastQuery, lastError string

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		prompt := fmt.Sprintf(constant.SqlGenerationTemplate, question, constant.SchemaInfo)
		if lastError != "" {
			prompt += fmt.Sprintf(constant.SqlRetryTemplate, lastQuery, lastError)
		}

		completion, err := e.provider.Chat(ctx, []llm.Message{
			{Role: constant.ChatMessageRoleUser, Content: prompt},
		}, llm.WithModel(e.model))
		if err != nil {
			lastError = err.Error()
			attempts = append(attempts, Attempt{Number: attempt, Err: lastError})
			e.logger.Warn("sqlgen", "generation call failed", map[string]interface{}{
				"attempt": attempt,
				"error":   lastError,
			})
			continue
		}

		e.logger.Info("sqlgen", "token usage generation", map[string]interface{}{
			"attempt":           attempt,
			"prompt_tokens":     completion.Usage.PromptTokens,
			"completion_tokens": completion.Usage.CompletionTokens,
			"total_tokens":      completion.Usage.TotalTokens,
		})

		query := sanitize(completion.Content)
		lastQuery = query

		if forbidden := forbiddenStatement(query); forbidden != "" {
			lastError = fmt.Sprintf("query contains forbidden statement %s", forbidden)
			attempts = append(attempts, Attempt{Number: attempt, Query: query, Err: lastError})
			e.logger.Warn("sqlgen", "generated query rejected", map[string]interface{}{
				"attempt": attempt,
				"keyword": forbidden,
			})
			continue
		}

		rows, err := e.insights.ExecuteReadOnly(ctx, query)
		if err != nil {
			lastError = err.Error()
			attempts = append(attempts, Attempt{Number: attempt, Query: query, Err: lastError})
			e.logger.Warn("sqlgen", "execution failed", map[string]interface{}{
				"attempt": attempt,
				"query":   query,
				"error":   lastError,
			})
			continue
		}

		attempts = append(attempts, Attempt{Number: attempt, Query: query})
		e.logger.Info("sqlgen", "query executed", map[string]interface{}{
			"attempt": attempt,
			"query":   query,
			"rows":    len(rows),
		})
		return rows, attempts, true
	}

	e.logger.Warn("sqlgen", "retry budget exhausted", map[string]interface{}{
		"attempts":   len(attempts),
		"last_error": lastError,
	})
	return nil, attempts, false
}

// sanitize strips markdown fences and comment injection, then keeps only
// the first statement.
func sanitize(raw string) string {
	query := strings.ReplaceAll(raw, "```sql", "")
	query = strings.ReplaceAll(query, "```", "")
	query = strings.ReplaceAll(query, ";--", "")
	query = strings.TrimSpace(query)
	if before, _, found := strings.Cut(query, ";"); found {
		query = before
	}
	return strings.TrimSpace(query)
}

func forbiddenStatement(query string) string {
	for _, word := range strings.Fields(strings.ToUpper(query)) {
		for _, forbidden := range forbiddenStatements {
			if word == forbidden {
				return forbidden
			}
		}
	}
	return ""
}
