package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notifier delivers a rendered notification for a consumed event.
type Notifier interface {
	NotifyRequestCreated(ctx context.Context, event RequestCreatedEvent) error
}

type NotificationConsumer struct {
	reader   *kafka.Reader
	notifier Notifier
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewNotificationConsumer(brokers string, topic string, groupID string, notifier Notifier, logger *zap.Logger) *NotificationConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{brokers},
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.FirstOffset,
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationConsumer{
		reader:   reader,
		notifier: notifier,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (c *NotificationConsumer) Start() {
	c.logger.Info("Notification consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID))

	go c.consume()
}

func (c *NotificationConsumer) consume() {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(c.ctx)
		if err != nil {
			if c.ctx.Err() != nil {
				c.logger.Info("Notification consumer stopped")
				return
			}
			c.logger.Error("Error reading message", zap.Error(err))
			continue
		}

		if err := c.processMessage(msg); err != nil {
			// Delivery is best-effort and at-most-once: log and fall through
			// to the commit so the message is never redelivered.
			c.logger.Error("Error processing message",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset))
		}

		if err := c.reader.CommitMessages(c.ctx, msg); err != nil {
			c.logger.Error("Error committing message", zap.Error(err))
		}
	}
}

func (c *NotificationConsumer) processMessage(msg kafka.Message) error {
	var event RequestCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return err
	}

	c.logger.Info("Processing request created event",
		zap.String("event_id", event.EventID),
		zap.String("request_id", event.RequestID),
		zap.String("recipient", event.ResponsibleEmail))

	return c.notifier.NotifyRequestCreated(c.ctx, event)
}

func (c *NotificationConsumer) Stop() {
	c.logger.Info("Stopping notification consumer")
	c.cancel()
}
