package service

import (
	"context"
	"encoding/json"
	"fmt"

	"pos-intelligence-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishEmbedDocument(ctx context.Context, payload *dto.PublishEmbedDocumentMessage) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) PublishEmbedDocument(_ context.Context, payload *dto.PublishEmbedDocumentMessage) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode embed message: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), encoded)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		return fmt.Errorf("failed to publish embed message: %w", err)
	}
	return nil
}
