package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	logger *zerolog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *zerolog.Logger) *Consumer {
	logger = logging.OrNop(logger)
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads messages until ctx is cancelled. A cancelled context is not an error.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeNotifications decodes notification events and hands them to handle.
// Undecodable messages are logged and skipped.
func (c *Consumer) ConsumeNotifications(ctx context.Context, handle func(context.Context, NotificationEvent) error) error {
	return c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		var event NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn().Err(err).Str("key", string(msg.Key)).Msg("skip malformed notification event")
			return nil
		}
		return handle(ctx, event)
	})
}
