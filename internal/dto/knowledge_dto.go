package dto

import "github.com/google/uuid"

type SyncDocumentsRequest struct {
	Text string `json:"text" validate:"required"`
}

type SyncDocumentsResponse struct {
	Queued int `json:"queued"`
}

// PublishEmbedDocumentMessage is the broker payload for one parsed document
// awaiting embedding and insertion.
type PublishEmbedDocumentMessage struct {
	DocumentType string `json:"document_type"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Source       string `json:"source"`
}

type SearchDocumentsResponse struct {
	Id           uuid.UUID `json:"id"`
	DocumentType string    `json:"document_type"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	VectorScore  float64   `json:"vector_score"`
	LexicalScore float64   `json:"lexical_score"`
}
