package service

import (
	"context"
	"fmt"

	"pos-intelligence-be/internal/dto"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/pkg/assistant/retrieval"
	"pos-intelligence-be/pkg/knowledge"
)

type IKnowledgeService interface {
	SyncDocuments(ctx context.Context, request *dto.SyncDocumentsRequest) (*dto.SyncDocumentsResponse, error)
	Search(ctx context.Context, query string) ([]*dto.SearchDocumentsResponse, error)
}

// knowledgeService parses tagged document text and queues each record for
// asynchronous embedding; search goes through the same hybrid retriever the
// assistant uses.
type knowledgeService struct {
	publisher IPublisherService
	retriever *retrieval.Retriever
	logger    logger.ILogger
}

func NewKnowledgeService(publisher IPublisherService, retriever *retrieval.Retriever, log logger.ILogger) IKnowledgeService {
	return &knowledgeService{
		publisher: publisher,
		retriever: retriever,
		logger:    log,
	}
}

func (s *knowledgeService) SyncDocuments(ctx context.Context, request *dto.SyncDocumentsRequest) (*dto.SyncDocumentsResponse, error) {
	records := knowledge.ParseDocuments(request.Text)

	queued := 0
	for _, rec := range records {
		err := s.publisher.PublishEmbedDocument(ctx, &dto.PublishEmbedDocumentMessage{
			DocumentType: rec.DocumentType,
			Title:        rec.Title,
			Content:      rec.Content,
			Source:       rec.Source,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to queue document %q: %w", rec.Title, err)
		}
		queued++
	}

	s.logger.Info("knowledge", "documents queued for ingestion", map[string]interface{}{
		"parsed": len(records),
		"queued": queued,
	})
	return &dto.SyncDocumentsResponse{Queued: queued}, nil
}

func (s *knowledgeService) Search(ctx context.Context, query string) ([]*dto.SearchDocumentsResponse, error) {
	hits, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchDocumentsResponse, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &dto.SearchDocumentsResponse{
			Id:           hit.Id,
			DocumentType: hit.DocumentType,
			Title:        hit.Title,
			Content:      hit.Content,
			VectorScore:  hit.VectorScore,
			LexicalScore: hit.LexicalScore,
		})
	}
	return results, nil
}
