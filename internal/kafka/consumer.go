package kafka

import (
	"context"
	"errors"
	"fmt"

	"weather-lookup/internal/logger"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// Handler processes one record value. Errors are logged and the record is skipped.
type Handler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	client *kgo.Client
	topic  string
	log    *zap.SugaredLogger
	done   chan struct{}
}

func NewConsumer(brokers []string, topic, group string) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	log := logger.GetLogger()
	log.Infow("Kafka consumer initialized", "topic", topic, "group", group)
	return &Consumer{client: client, topic: topic, log: log, done: make(chan struct{})}, nil
}

// Start polls in the background until ctx is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context, handler Handler) {
	go func() {
		defer close(c.done)
		for {
			fetches := c.client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				return
			}
			fetches.EachError(func(topic string, partition int32, err error) {
				if errors.Is(err, context.Canceled) {
					return
				}
				c.log.Warnw("Kafka fetch error", "topic", topic, "partition", partition, "error", err)
			})
			fetches.EachRecord(func(r *kgo.Record) {
				if err := handler(ctx, r.Key, r.Value); err != nil {
					c.log.Warnw("Skipping event", "topic", r.Topic, "offset", r.Offset, "error", err)
				}
			})
		}
	}()
}

func (c *Consumer) Stop() {
	c.client.Close()
}

// Done is closed once the poll loop has exited.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}
