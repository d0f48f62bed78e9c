package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type KnowledgeDocument struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentType string          `gorm:"column:document_type;type:varchar(50);not null;index"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Content      string          `gorm:"type:text;not null"`
	Source       string          `gorm:"type:varchar(120)"`
	Embedding    pgvector.Vector `gorm:"type:vector(384)"` // MiniLM-class embeddings use 384 dimensions
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}
