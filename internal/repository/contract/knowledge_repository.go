package contract

import (
	"context"

	"pos-intelligence-be/internal/entity"

	"github.com/google/uuid"
)

// RetrievalHit is one scored candidate from a single retrieval branch.
// A hit carries only the score its branch produced; the fusion step joins
// the two branches and treats a missing score as zero.
type RetrievalHit struct {
	Id           uuid.UUID
	DocumentType string
	Title        string
	Content      string
	VectorScore  float64
	LexicalScore float64
}

// Context renders the hit the way the synthesis prompt expects it.
func (h *RetrievalHit) Context() string {
	return "[" + h.DocumentType + "] " + h.Title + ": " + h.Content
}

type KnowledgeRepository interface {
	Create(ctx context.Context, doc *entity.KnowledgeDocument) error
	CreateBulk(ctx context.Context, docs []*entity.KnowledgeDocument) error
	Count(ctx context.Context) (int64, error)

	// VectorSearch ranks by cosine similarity against the stored embedding,
	// keeping only candidates at or above the floor.
	VectorSearch(ctx context.Context, embedding []float32, floor float64, limit int) ([]*RetrievalHit, error)

	// LexicalSearch ranks by full-text relevance over title+content.
	LexicalSearch(ctx context.Context, terms string, limit int) ([]*RetrievalHit, error)
}
