package intent

import (
	"context"
	"fmt"
	"strings"

	"pos-intelligence-be/internal/constant"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/pkg/llm"
)

type Intent string

const (
	IntentGreeting Intent = "GREETING"
	IntentAbout    Intent = "ABOUT"
	IntentClosure  Intent = "CLOSURE"
	IntentSQL      Intent = "SQL"
	IntentRAG      Intent = "RAG"
	IntentBoth     Intent = "BOTH"
)

var (
	greetingPhrases = []string{"hi", "hello", "hey", "good morning", "good evening"}
	aboutMarkers    = []string{"help", "what can you do", "features", "how to use"}
	closureMarkers  = []string{"bye", "thank you", "thanks", "exit"}

	engineIntents = []Intent{IntentSQL, IntentRAG, IntentBoth}
)

// Classifier routes a standalone question. Small-talk categories are
// resolved by keyword shortcut before any model call; the rest go through a
// low-temperature classification prompt with normalization on the output.
type Classifier struct {
	provider llm.Provider
	model    string
	logger   logger.ILogger
}

func NewClassifier(provider llm.Provider, model string, log logger.ILogger) *Classifier {
	return &Classifier{provider: provider, model: model, logger: log}
}

func (c *Classifier) Classify(ctx context.Context, question string) (Intent, error) {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, phrase := range greetingPhrases {
		if q == phrase {
			return IntentGreeting, nil
		}
	}
	for _, marker := range aboutMarkers {
		if strings.Contains(q, marker) {
			return IntentAbout, nil
		}
	}
	for _, marker := range closureMarkers {
		if strings.Contains(q, marker) {
			return IntentClosure, nil
		}
	}

	completion, err := c.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.RoutingPromptTemplate, question)},
	}, llm.WithModel(c.model), llm.WithTemperature(0.1))
	if err != nil {
		return "", fmt.Errorf("failed to classify intent: %w", err)
	}

	c.logger.Info("intent", "token usage", map[string]interface{}{
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"total_tokens":      completion.Usage.TotalTokens,
	})

	intent := normalize(completion.Content)
	c.logger.Info("intent", "identified intent", map[string]interface{}{
		"intent": string(intent),
	})
	return intent, nil
}

// normalize coerces arbitrary classifier output into the closed set.
// Unrecognized output defaults to SQL, the cheapest and most literal path.
func normalize(raw string) Intent {
	candidate := Intent(strings.ToUpper(strings.TrimSpace(raw)))
	for _, valid := range engineIntents {
		if candidate == valid {
			return candidate
		}
	}
	for _, word := range strings.Fields(string(candidate)) {
		for _, valid := range engineIntents {
			if Intent(word) == valid {
				return valid
			}
		}
	}
	return IntentSQL
}
