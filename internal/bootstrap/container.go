package bootstrap

import (
	"context"
	"log"

	"pos-intelligence-be/internal/config"
	"pos-intelligence-be/internal/controller"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/implementation"
	"pos-intelligence-be/internal/repository/memory"
	"pos-intelligence-be/internal/service"
	"pos-intelligence-be/pkg/assistant/fusion"
	"pos-intelligence-be/pkg/assistant/guardrail"
	"pos-intelligence-be/pkg/assistant/intent"
	"pos-intelligence-be/pkg/assistant/reformulate"
	"pos-intelligence-be/pkg/assistant/retrieval"
	"pos-intelligence-be/pkg/assistant/sqlgen"
	"pos-intelligence-be/pkg/embedding"
	"pos-intelligence-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	KnowledgeController controller.IKnowledgeController

	// Background services (run from main)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)

	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "groq" {
		llmBaseURL = cfg.Ai.GroqBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LargeModel,
		llmBaseURL,
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (fast=%s, large=%s)", cfg.Ai.LLMProvider, cfg.Ai.FastModel, cfg.Ai.LargeModel)

	// 4. Redis + session memory with in-process fallback
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (session memory will use in-process fallback)", err)
	}

	conversationStore := memory.NewFailoverStore(rdb, memory.Limits{
		MaxMessages:     cfg.Assistant.MaxHistoryMessages,
		MaxMessageChars: cfg.Assistant.MaxMessageChars,
		TTL:             cfg.Assistant.ChatTTL,
	}, sysLogger)

	// 5. Repositories
	knowledgeRepo := implementation.NewKnowledgeRepository(db)
	insightRepo := implementation.NewInsightRepository(db)

	// 6. Pipeline components
	validator := guardrail.NewValidator(cfg.Assistant.MaxQuestionTokens, auditLogger)
	reformulator := reformulate.NewReformulator(llmProvider, conversationStore, cfg.Ai.LargeModel, cfg.Assistant.HistoryWindow, sysLogger)
	classifier := intent.NewClassifier(llmProvider, cfg.Ai.FastModel, sysLogger)
	engine := sqlgen.NewEngine(llmProvider, insightRepo, cfg.Ai.LargeModel, cfg.Assistant.MaxQueryAttempts, sysLogger)
	retriever := retrieval.NewRetriever(embeddingProvider, llmProvider, knowledgeRepo, cfg.Ai.LargeModel, retrieval.Options{
		Floor:                cfg.Assistant.SimilarityFloor,
		VectorWeight:         cfg.Assistant.VectorWeight,
		LexicalWeight:        cfg.Assistant.LexicalWeight,
		BranchLimit:          cfg.Assistant.BranchLimit,
		FuseLimit:            cfg.Assistant.FuseLimit,
		LexicalFallbackLimit: cfg.Assistant.LexicalFallbackLimit,
	}, sysLogger)
	synthesizer := fusion.NewSynthesizer(engine, retriever, llmProvider, cfg.Ai.FastModel, cfg.Ai.LargeModel, sysLogger)

	// 7. Services
	assistantService := service.NewAssistantService(
		validator,
		reformulator,
		classifier,
		engine,
		retriever,
		synthesizer,
		conversationStore,
		sysLogger,
		auditLogger,
	)
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.EmbedTopicName)
	knowledgeService := service.NewKnowledgeService(publisherService, retriever, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Ai.EmbedTopicName, knowledgeRepo, embeddingProvider, sysLogger)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService, cfg.Assistant.HistoryWindow),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ConsumerService:     consumerService,
	}
}
