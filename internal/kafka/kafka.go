// Package kafka publishes and consumes city lookup events.
package kafka

import (
	"weather-lookup/internal/config"
	"weather-lookup/internal/logger"
)

type KafkaBundle struct {
	LookupProducer *Producer
	LookupConsumer *Consumer
}

// InitKafka connects the lookup event producer and consumer. It returns nil
// when no brokers are configured.
func InitKafka(cfg *config.Config) (*KafkaBundle, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.GetLogger().Infow("Kafka disabled: KAFKA_BROKERS not set")
		return nil, nil
	}

	producer, err := NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}
	consumer, err := NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup)
	if err != nil {
		producer.Close()
		return nil, err
	}
	return &KafkaBundle{LookupProducer: producer, LookupConsumer: consumer}, nil
}

func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	b.LookupConsumer.Stop()
	b.LookupProducer.Close()
}
