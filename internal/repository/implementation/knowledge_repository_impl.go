package implementation

import (
	"context"

	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/mapper"
	"pos-intelligence-be/internal/model"
	"pos-intelligence-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, doc *entity.KnowledgeDocument) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) CreateBulk(ctx context.Context, docs []*entity.KnowledgeDocument) error {
	models := make([]*model.KnowledgeDocument, len(docs))
	for i, d := range docs {
		models[i] = r.mapper.ToModel(d)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	// Update IDs back to entities
	for i, m := range models {
		*docs[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeDocument{}).Count(&count).Error
	return count, err
}

type scoredRow struct {
	Id           uuid.UUID
	DocumentType string
	Title        string
	Content      string
	Score        float64
}

// VectorSearch uses pgvector cosine distance: 1 - (embedding <=> query) is
// the cosine similarity, in [0,1] for normalized vectors.
func (r *KnowledgeRepositoryImpl) VectorSearch(ctx context.Context, embedding []float32, floor float64, limit int) ([]*contract.RetrievalHit, error) {
	if limit <= 0 {
		limit = 20
	}

	queryVector := pgvector.NewVector(embedding)

	var rows []scoredRow
	err := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Select("id, document_type, title, content, 1 - (embedding <=> ?) AS score", queryVector).
		Where("embedding IS NOT NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, floor).
		Order("score DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	hits := make([]*contract.RetrievalHit, len(rows))
	for i, row := range rows {
		hits[i] = &contract.RetrievalHit{
			Id:           row.Id,
			DocumentType: row.DocumentType,
			Title:        row.Title,
			Content:      row.Content,
			VectorScore:  row.Score,
		}
	}
	return hits, nil
}

// LexicalSearch ranks with ts_rank_cd over the concatenated title and
// content, matching the derived search terms with plainto_tsquery.
func (r *KnowledgeRepositoryImpl) LexicalSearch(ctx context.Context, terms string, limit int) ([]*contract.RetrievalHit, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []scoredRow
	err := r.db.WithContext(ctx).
		Table("knowledge_documents").
		Select("id, document_type, title, content, ts_rank_cd(to_tsvector('simple', title || ' ' || content), plainto_tsquery('simple', ?)) AS score", terms).
		Where("to_tsvector('simple', title || ' ' || content) @@ plainto_tsquery('simple', ?)", terms).
		Order("score DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	hits := make([]*contract.RetrievalHit, len(rows))
	for i, row := range rows {
		hits[i] = &contract.RetrievalHit{
			Id:           row.Id,
			DocumentType: row.DocumentType,
			Title:        row.Title,
			Content:      row.Content,
			LexicalScore: row.Score,
		}
	}
	return hits, nil
}
