package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub              *gochannel.GoChannel
	topicName           string
	notificationService *NotificationService
	logger              logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	notificationService *NotificationService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:              pubSub,
		topicName:           topicName,
		notificationService: notificationService,
		logger:              log,
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
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal event message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	evt := events.BaseEvent{Type: envelope.Type, Data: envelope.Payload}
	if err := cs.notificationService.HandleEvent(ctx, evt); err != nil {
		cs.logger.Error("ConsumerService", "Event handler failed", map[string]interface{}{
			"type":  envelope.Type,
			"error": err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
