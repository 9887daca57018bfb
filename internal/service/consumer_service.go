package service

import (
	"context"
	"encoding/json"

	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/pkg/events"
	natspub "ancestral-travel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the internal event bus: every envelope is logged as
// telemetry and mirrored to NATS when a publisher is configured.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	natsPublisher *natspub.Publisher // nil when NATS is not configured
	logger        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPublisher *natspub.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		natsPublisher: natsPublisher,
		logger:        log,
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
	var envelope dto.EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal event envelope", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	cs.logger.Info("consumer", "event processed", map[string]interface{}{
		"type":    envelope.Type,
		"payload": envelope.Payload,
	})

	if cs.natsPublisher != nil {
		event := events.BaseEvent{
			Type:       envelope.Type,
			Data:       envelope.Payload,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.natsPublisher.Publish(ctx, event); err != nil {
			cs.logger.Warn("consumer", "failed to mirror event to nats", map[string]interface{}{
				"error": err.Error(),
				"type":  envelope.Type,
			})
		}
	}

	msg.Ack()
}
