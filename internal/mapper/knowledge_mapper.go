package mapper

import (
	"time"

	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(e *model.KnowledgeDocument) *entity.KnowledgeDocument {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeDocument{
		Id:           e.Id,
		DocumentType: e.DocumentType,
		Title:        e.Title,
		Content:      e.Content,
		Source:       e.Source,
		Embedding:    e.Embedding.Slice(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(e *entity.KnowledgeDocument) *model.KnowledgeDocument {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeDocument{
		Id:           e.Id,
		DocumentType: e.DocumentType,
		Title:        e.Title,
		Content:      e.Content,
		Source:       e.Source,
		Embedding:    pgvector.NewVector(e.Embedding),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(docs []*model.KnowledgeDocument) []*entity.KnowledgeDocument {
	entities := make([]*entity.KnowledgeDocument, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
