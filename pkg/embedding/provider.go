package embedding

// Dimensions is the embedding width the knowledge_documents table is
// provisioned for (all-minilm / MiniLM-class models).
const Dimensions = 384

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// Provider defines the interface for generating text embeddings
type Provider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
