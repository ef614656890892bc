package kafka

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/BearBump/SalesTrack/internal/logging"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic (lead.intake, carrier.updates) with at-least-once
// delivery: offsets are committed only after the handler succeeded.
type Consumer struct {
	topic string
	r     messageReader
	log   *zap.Logger
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		MaxWait:           500 * time.Millisecond,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
		StartOffset:       kafka.FirstOffset,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return newConsumerWithReader(topic, kafka.NewReader(cfg))
}

func newConsumerWithReader(topic string, r messageReader) *Consumer {
	return &Consumer{topic: topic, r: r, log: zap.NewNop()}
}

func (c *Consumer) WithLogger(l *zap.Logger) *Consumer {
	c.log = logging.OrNop(l).With(zap.String("topic", c.topic))
	return c
}

func (c *Consumer) Topic() string { return c.topic }

func (c *Consumer) Close() error {
	return c.r.Close()
}

// Consume blocks until ctx is done, the reader fails or handler returns an
// error. The failed message stays uncommitted and is redelivered on the next
// Consume.
func (c *Consumer) Consume(ctx context.Context, handler func(key, value []byte) error) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrapf(err, "fetch %s", c.topic)
		}
		c.log.Debug("kafka message",
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.ByteString("key", msg.Key))

		if err := handler(msg.Key, msg.Value); err != nil {
			return errors.Wrapf(err, "%s@%d/%d", c.topic, msg.Partition, msg.Offset)
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrapf(err, "commit %s@%d/%d", c.topic, msg.Partition, msg.Offset)
		}
	}
}
