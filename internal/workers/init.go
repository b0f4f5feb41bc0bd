package workers

import (
	"context"

	"weather-lookup/internal/models"
)

const syncBuffer = 100

type WorkerBundle struct {
	HistoryWorker *GenericWorker[models.LookupEvent]
}

// StartAllWorkers starts the history syncer fed by consumer. A nil consumer
// means events are disabled and no workers run.
func StartAllWorkers(ctx context.Context, consumer Source, history HistoryRecorder, instance string) *WorkerBundle {
	if consumer == nil {
		return &WorkerBundle{}
	}

	historyCh := make(chan []byte, syncBuffer)
	StartPassthroughMultiplexer(ctx, consumer, historyCh)

	historyWorker := NewGenericWorker[models.LookupEvent](historyCh, NewHistorySyncer(history, instance))
	go historyWorker.Start(ctx)

	return &WorkerBundle{HistoryWorker: historyWorker}
}
