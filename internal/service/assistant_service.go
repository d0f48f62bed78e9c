package service

import (
	"context"
	"fmt"

	"pos-intelligence-be/internal/dto"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/memory"
	"pos-intelligence-be/pkg/assistant/fusion"
	"pos-intelligence-be/pkg/assistant/guardrail"
	"pos-intelligence-be/pkg/assistant/intent"
	"pos-intelligence-be/pkg/assistant/reformulate"
	"pos-intelligence-be/pkg/assistant/retrieval"
	"pos-intelligence-be/pkg/assistant/smalltalk"
	"pos-intelligence-be/pkg/assistant/sqlgen"
)

type IAssistantService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, sessionId string, window int) (*dto.GetHistoryResponse, error)
	ClearSession(ctx context.Context, sessionId string) error
}

// assistantService runs the question pipeline: guardrail, reformulation,
// intent routing, then one of the answer paths. Accepted turns are appended
// to session memory, user message first; rejected turns leave no trace.
type assistantService struct {
	validator    *guardrail.Validator
	reformulator *reformulate.Reformulator
	classifier   *intent.Classifier
	engine       *sqlgen.Engine
	retriever    *retrieval.Retriever
	synthesizer  *fusion.Synthesizer
	store        memory.ConversationStore
	logger       logger.ILogger
	audit        logger.ILogger
}

func NewAssistantService(
	validator *guardrail.Validator,
	reformulator *reformulate.Reformulator,
	classifier *intent.Classifier,
	engine *sqlgen.Engine,
	retriever *retrieval.Retriever,
	synthesizer *fusion.Synthesizer,
	store memory.ConversationStore,
	log logger.ILogger,
	audit logger.ILogger,
) IAssistantService {
	return &assistantService{
		validator:    validator,
		reformulator: reformulator,
		classifier:   classifier,
		engine:       engine,
		retriever:    retriever,
		synthesizer:  synthesizer,
		store:        store,
		logger:       log,
		audit:        audit,
	}
}

func (s *assistantService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	verdict := s.validator.Validate(request.Question)
	if !verdict.Allowed {
		s.audit.Warn("assistant", "question rejected", map[string]interface{}{
			"session_id": request.SessionId,
			"code":       string(verdict.Code),
		})
		return &dto.AskResponse{
			SessionId: request.SessionId,
			Question:  request.Question,
			Answer:    verdict.Message,
			Rejected:  true,
		}, nil
	}

	standalone := s.reformulator.Reformulate(ctx, request.Question, request.SessionId)

	classified, err := s.classifier.Classify(ctx, standalone)
	if err != nil {
		s.logger.Warn("assistant", "classification failed, defaulting to SQL path", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
		classified = intent.IntentSQL
	}

	answer, err := s.dispatch(ctx, classified, standalone)
	if err != nil {
		return nil, err
	}

	// Memory failures degrade the session, not the answer.
	if err := s.store.Save(ctx, request.SessionId, memory.RoleUser, request.Question); err != nil {
		s.logger.Warn("assistant", "failed to save user message", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
	}
	if err := s.store.Save(ctx, request.SessionId, memory.RoleAssistant, answer); err != nil {
		s.logger.Warn("assistant", "failed to save assistant message", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      err.Error(),
		})
	}

	s.audit.Info("assistant", "turn completed", map[string]interface{}{
		"session_id": request.SessionId,
		"intent":     string(classified),
		"question":   standalone,
		"answer_len": len(answer),
	})

	response := &dto.AskResponse{
		SessionId: request.SessionId,
		Question:  request.Question,
		Intent:    string(classified),
		Answer:    answer,
	}
	if standalone != request.Question {
		response.StandaloneQuestion = standalone
	}
	return response, nil
}

func (s *assistantService) dispatch(ctx context.Context, classified intent.Intent, question string) (string, error) {
	if reply, ok := smalltalk.Reply(classified); ok {
		return reply, nil
	}

	switch classified {
	case intent.IntentSQL:
		return s.engine.Answer(ctx, question)
	case intent.IntentRAG:
		return s.retriever.Answer(ctx, question), nil
	case intent.IntentBoth:
		return s.synthesizer.Answer(ctx, question)
	default:
		return "", fmt.Errorf("unknown intent %q", classified)
	}
}

func (s *assistantService) GetHistory(ctx context.Context, sessionId string, window int) (*dto.GetHistoryResponse, error) {
	history, err := s.store.History(ctx, sessionId, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	messages := make([]dto.HistoryMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, dto.HistoryMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return &dto.GetHistoryResponse{
		SessionId: sessionId,
		Messages:  messages,
	}, nil
}

func (s *assistantService) ClearSession(ctx context.Context, sessionId string) error {
	return s.store.Clear(ctx, sessionId)
}
