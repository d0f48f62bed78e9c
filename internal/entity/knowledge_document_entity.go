package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeDocument struct {
	Id           uuid.UUID
	DocumentType string
	Title        string
	Content      string
	Source       string
	Embedding    []float32
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
