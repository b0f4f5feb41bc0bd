package workers

import (
	"context"

	"weather-lookup/internal/kafka"
	"weather-lookup/internal/logger"
)

// Source is satisfied by *kafka.Consumer.
type Source interface {
	Start(ctx context.Context, handler kafka.Handler)
}

// StartPassthroughMultiplexer forwards every consumed value to outCh,
// dropping values when the channel is full.
func StartPassthroughMultiplexer(ctx context.Context, consumer Source, outCh chan<- []byte) {
	if consumer == nil || outCh == nil {
		return
	}
	log := logger.GetLogger()
	consumer.Start(ctx, func(_ context.Context, key, value []byte) error {
		select {
		case outCh <- value:
		default:
			log.Warnw("Worker channel full, dropping message", "key", string(key))
		}
		return nil
	})
}
