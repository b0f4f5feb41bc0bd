package workers

import (
	"context"

	"weather-lookup/internal/logger"

	"go.uber.org/zap"
)

type GenericWorker[T any] struct {
	messages <-chan []byte
	handler  WorkerHandler[T]
	log      *zap.SugaredLogger
}

type Worker interface {
	Start(ctx context.Context)
}

func NewGenericWorker[T any](messages <-chan []byte, handler WorkerHandler[T]) *GenericWorker[T] {
	return &GenericWorker[T]{
		messages: messages,
		handler:  handler,
		log:      logger.GetLogger(),
	}
}

// Start processes messages until ctx is done or the channel is closed.
func (w *GenericWorker[T]) Start(ctx context.Context) {
	w.log.Infow("Worker started", "worker", w.handler.Type())

	for {
		select {
		case value, ok := <-w.messages:
			if !ok {
				w.log.Infow("Worker input closed", "worker", w.handler.Type())
				return
			}
			w.process(ctx, value)

		case <-ctx.Done():
			w.log.Infow("Worker stopped", "worker", w.handler.Type())
			return
		}
	}
}

func (w *GenericWorker[T]) process(ctx context.Context, value []byte) {
	item, err := w.handler.Decode(value)
	if err != nil {
		w.log.Warnw("Worker could not decode message", "worker", w.handler.Type(), "error", err)
		return
	}
	if item == nil {
		return
	}
	if err := w.handler.Apply(ctx, item); err != nil {
		w.log.Warnw("Worker failed to apply message", "worker", w.handler.Type(), "error", err)
	}
}
