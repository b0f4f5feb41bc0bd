package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"weather-lookup/internal/models"
)

type HistoryRecorder interface {
	RecordSelection(ctx context.Context, place models.Place) bool
}

// HistorySyncer records cities added on other instances into the local
// search history, so history is shared between devices.
type HistorySyncer struct {
	history  HistoryRecorder
	instance string
}

var _ WorkerHandler[models.LookupEvent] = (*HistorySyncer)(nil)

func NewHistorySyncer(history HistoryRecorder, instance string) *HistorySyncer {
	return &HistorySyncer{history: history, instance: instance}
}

func (*HistorySyncer) Type() string {
	return "history-sync"
}

func (s *HistorySyncer) Decode(value []byte) (*models.LookupEvent, error) {
	var evt models.LookupEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return nil, fmt.Errorf("invalid lookup event: %w", err)
	}
	if evt.Type != models.EventCityAdded || evt.Source == s.instance || evt.Place.Name == "" {
		return nil, nil
	}
	return &evt, nil
}

func (s *HistorySyncer) Apply(ctx context.Context, evt *models.LookupEvent) error {
	if !s.history.RecordSelection(ctx, evt.Place) {
		return fmt.Errorf("event %s: place not recorded", evt.ID)
	}
	return nil
}
