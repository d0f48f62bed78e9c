package reformulate

import (
	"context"
	"fmt"
	"strings"

	"pos-intelligence-be/internal/constant"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/memory"
	"pos-intelligence-be/pkg/llm"
)

// contextMarkers are the pronouns and causal words that signal a follow-up
// question needing history to stand alone. Substring match, lowercase.
var contextMarkers = []string{
	"it", "that", "those", "them", "this", "these", "its",
	"why", "reason", "explain", "cause", "delayed and why", "if so why",
}

// preamblePhrases are chatter some models prepend despite instructions.
// When one appears, the real query follows the first colon.
var preamblePhrases = []string{"here's the", "the rewritten", "standalone query:", "output:"}

// Reformulator rewrites follow-up questions into standalone ones using the
// session history. Best-effort: any failure returns the original question.
type Reformulator struct {
	provider llm.Provider
	store    memory.ConversationStore
	model    string
	window   int
	logger   logger.ILogger
}

func NewReformulator(provider llm.Provider, store memory.ConversationStore, model string, window int, log logger.ILogger) *Reformulator {
	return &Reformulator{
		provider: provider,
		store:    store,
		model:    model,
		window:   window,
		logger:   log,
	}
}

func (r *Reformulator) Reformulate(ctx context.Context, question, sessionID string) string {
	history, err := r.store.History(ctx, sessionID, r.window)
	if err != nil || len(history) == 0 {
		return question
	}

	if !needsContext(question) {
		r.logger.Debug("reformulate", "standalone query detected, fast path", nil)
		return question
	}

	var recent strings.Builder
	for i, msg := range history {
		if i > 0 {
			recent.WriteString("\n")
		}
		recent.WriteString(msg.Role + ": " + msg.Content)
	}

	completion, err := r.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.StandaloneSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.StandaloneUserTemplate, recent.String(), question)},
	}, llm.WithModel(r.model), llm.WithTemperature(0))
	if err != nil {
		r.logger.Warn("reformulate", "rewrite failed, using original question", map[string]interface{}{
			"error": err.Error(),
		})
		return question
	}

	r.logger.Info("reformulate", "token usage", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})

	refined := strings.TrimSpace(completion.Content)
	if len(refined) < 3 {
		r.logger.Warn("reformulate", "invalid rewrite output, using original", nil)
		return question
	}

	refined = stripPreamble(refined)

	if refined != question {
		r.logger.Info("reformulate", "question rewritten", map[string]interface{}{
			"original": question,
			"rewritten": refined,
		})
	}
	return refined
}

func needsContext(question string) bool {
	q := strings.ToLower(question)
	for _, marker := range contextMarkers {
		if strings.Contains(q, marker) {
			return true
		}
	}
	return false
}

func stripPreamble(refined string) string {
	lower := strings.ToLower(refined)
	for _, phrase := range preamblePhrases {
		if strings.Contains(lower, phrase) {
			if _, after, found := strings.Cut(refined, ":"); found {
				return strings.TrimSpace(after)
			}
			break
		}
	}
	return refined
}
