package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/application"
	msgDomain "github.com/cicd-demo/board-service/internal/domain/message"
	"github.com/cicd-demo/board-service/internal/platform/kafka"
)

// MessageIngestConsumer creates board messages from message.submitted events.
type MessageIngestConsumer struct {
	consumer *kafka.Consumer
	service  *application.MessageService
	logger   *zap.Logger
}

// NewMessageIngestConsumer creates a new MessageIngestConsumer.
func NewMessageIngestConsumer(
	brokers []string,
	groupID string,
	service *application.MessageService,
	logger *zap.Logger,
) *MessageIngestConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, msgDomain.TopicMessageInbound, logger)
	return &MessageIngestConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming. This blocks until the context is cancelled.
func (c *MessageIngestConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *MessageIngestConsumer) Close() error {
	return c.consumer.Close()
}

func (c *MessageIngestConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from inbound topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // malformed input is dropped, not retried
	}

	switch cloudEvent.Type {
	case msgDomain.EventMessageSubmitted:
		return c.handleSubmitted(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled inbound event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *MessageIngestConsumer) handleSubmitted(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt msgDomain.SubmittedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse SubmittedEvent data", zap.Error(err))
		return nil
	}

	created, err := c.service.CreateMessage(ctx, application.CreateMessageRequest{Text: evt.Text})
	if err != nil {
		c.logger.Error("failed to create message from inbound event",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("message created from inbound event",
		zap.String("event_id", cloudEvent.ID),
		zap.Int64("message_id", created.ID),
	)
	return nil
}
