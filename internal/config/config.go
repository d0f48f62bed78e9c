package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "groq" or "ollama"
	FastModel         string // classification / refinement tier
	LargeModel        string // generation / synthesis tier
	GroqAPIKey        string
	GroqBaseURL       string
	EmbeddingProvider string
	OllamaBaseURL     string
	OllamaModel       string // embedding model, 384 dimensions
	EmbedTopicName    string
}

// AssistantConfig holds the pipeline tunables. The similarity floor in
// particular is deployment-tuned, so everything here is an env override.
type AssistantConfig struct {
	MaxQuestionTokens    int
	SimilarityFloor      float64
	VectorWeight         float64
	LexicalWeight        float64
	BranchLimit          int
	FuseLimit            int
	LexicalFallbackLimit int
	HistoryWindow        int
	MaxHistoryMessages   int
	MaxMessageChars      int
	ChatTTL              time.Duration
	MaxQueryAttempts     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/system_audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			FastModel:         getEnv("LLM_FAST_MODEL", "llama-3.1-8b-instant"),
			LargeModel:        getEnv("LLM_LARGE_MODEL", "llama-3.3-70b-versatile"),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			EmbedTopicName:    getEnv("EMBED_KNOWLEDGE_TOPIC_NAME", "EMBED_KNOWLEDGE_DOCUMENT"),
		},
		Assistant: AssistantConfig{
			MaxQuestionTokens:    getEnvAsInt("ASSISTANT_MAX_QUESTION_TOKENS", 200),
			SimilarityFloor:      getEnvAsFloat("RAG_SIMILARITY_FLOOR", 0.5),
			VectorWeight:         getEnvAsFloat("RAG_VECTOR_WEIGHT", 0.7),
			LexicalWeight:        getEnvAsFloat("RAG_LEXICAL_WEIGHT", 0.3),
			BranchLimit:          getEnvAsInt("RAG_BRANCH_LIMIT", 20),
			FuseLimit:            getEnvAsInt("RAG_FUSE_LIMIT", 6),
			LexicalFallbackLimit: getEnvAsInt("RAG_LEXICAL_FALLBACK_LIMIT", 4),
			HistoryWindow:        getEnvAsInt("MEMORY_HISTORY_WINDOW", 6),
			MaxHistoryMessages:   getEnvAsInt("MEMORY_MAX_MESSAGES", 20),
			MaxMessageChars:      getEnvAsInt("MEMORY_MAX_MESSAGE_CHARS", 2000),
			ChatTTL:              getEnvAsDuration("MEMORY_CHAT_TTL", 30*time.Minute),
			MaxQueryAttempts:     getEnvAsInt("SQL_MAX_ATTEMPTS", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
