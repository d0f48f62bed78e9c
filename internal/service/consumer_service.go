package service

import (
	"context"
	"encoding/json"

	"pos-intelligence-be/internal/dto"
	"pos-intelligence-be/internal/entity"
	"pos-intelligence-be/internal/pkg/logger"
	"pos-intelligence-be/internal/repository/contract"
	"pos-intelligence-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the embed topic: each message is one parsed
// document that still needs its vector computed before insertion.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	knowledgeRepo     contract.KnowledgeRepository
	embeddingProvider embedding.Provider
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	knowledgeRepo contract.KnowledgeRepository,
	embeddingProvider embedding.Provider,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		knowledgeRepo:     knowledgeRepo,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal embed message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads never succeed on retry
		return
	}

	embedded, err := cs.embeddingProvider.Generate(payload.Title+" "+payload.Content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		cs.logger.Error("consumer", "failed to embed document", map[string]interface{}{
			"title": payload.Title,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	doc := &entity.KnowledgeDocument{
		DocumentType: payload.DocumentType,
		Title:        payload.Title,
		Content:      payload.Content,
		Source:       payload.Source,
		Embedding:    embedded.Embedding.Values,
	}
	if err := cs.knowledgeRepo.Create(ctx, doc); err != nil {
		cs.logger.Error("consumer", "failed to insert document", map[string]interface{}{
			"title": payload.Title,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("consumer", "document ingested", map[string]interface{}{
		"title": payload.Title,
		"type":  payload.DocumentType,
	})
	msg.Ack()
}
