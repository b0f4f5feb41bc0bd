package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weather-lookup/internal/logger"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type ProducerInterface interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type Producer struct {
	topic  string
	client *kgo.Client
	log    *zap.SugaredLogger
}

var _ ProducerInterface = (*Producer)(nil)

func NewProducer(brokers []string, topic string) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	log := logger.GetLogger()
	log.Infow("Kafka producer initialized", "topic", topic, "brokers", brokers)
	return &Producer{topic: topic, client: client, log: log}, nil
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.client.ProduceSync(ctx, msg).FirstErr(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	p.log.Debugw("Published event", "topic", p.topic, "key", string(key))
	return nil
}

// PublishObjectAsync marshals obj to JSON and publishes it in the background.
// Failures are logged.
func (p *Producer) PublishObjectAsync(key []byte, obj interface{}) {
	go func() {
		value, err := json.Marshal(obj)
		if err != nil {
			p.log.Errorw("Failed to marshal event", "error", err)
			return
		}

		if err := p.Publish(context.Background(), key, value); err != nil {
			p.log.Warnw("Kafka async publish failed", "error", err)
		}
	}()
}
