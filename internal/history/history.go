// Package history keeps the "recent" and "history" lists of selected places.
package history

import (
	"context"
	"encoding/json"
	"sync"

	"weather-lookup/internal/logger"
	"weather-lookup/internal/models"
	"weather-lookup/internal/storage"

	"go.uber.org/zap"
)

const (
	RecentKey  = "weather-app-recent"
	HistoryKey = "weather-app-history"

	MaxRecent  = 5
	MaxHistory = 30
)

// Store persists both lists most-recent-first, unique by name and country.
// Unreadable stored data reads as an empty list, and failed writes are logged
// rather than returned: history is never worth failing a lookup over.
type Store struct {
	kv  storage.Store
	mu  sync.Mutex
	log *zap.SugaredLogger
}

func New(kv storage.Store) *Store {
	return &Store{kv: kv, log: logger.GetLogger()}
}

func (s *Store) Recent(ctx context.Context) []models.Place {
	return s.load(ctx, RecentKey)
}

func (s *Store) History(ctx context.Context) []models.Place {
	return s.load(ctx, HistoryKey)
}

// RecordSelection moves place to the front of both lists. Places without a
// name are ignored and reported as not recorded.
func (s *Store) RecordSelection(ctx context.Context, place models.Place) bool {
	if place.Name == "" {
		return false
	}
	entry := models.Place{Name: place.Name, Country: place.Country, Lat: place.Lat, Lon: place.Lon}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(ctx, RecentKey, prepend(s.load(ctx, RecentKey), entry, MaxRecent))
	s.save(ctx, HistoryKey, prepend(s.load(ctx, HistoryKey), entry, MaxHistory))
	return true
}

// ClearAll empties both lists.
func (s *Store) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(ctx, RecentKey, []models.Place{})
	s.save(ctx, HistoryKey, []models.Place{})
}

func (s *Store) load(ctx context.Context, key string) []models.Place {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warnw("Could not read search history", "key", key, "error", err)
		return []models.Place{}
	}
	if !ok || raw == "" {
		return []models.Place{}
	}

	var places []models.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		s.log.Warnw("Discarding unreadable search history", "key", key, "error", err)
		return []models.Place{}
	}
	if places == nil {
		return []models.Place{}
	}
	return places
}

func (s *Store) save(ctx context.Context, key string, places []models.Place) {
	data, err := json.Marshal(places)
	if err != nil {
		s.log.Warnw("Could not encode search history", "key", key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		s.log.Warnw("Could not save search history", "key", key, "error", err)
	}
}

// prepend puts entry first, drops later duplicates by key and trims to limit.
func prepend(list []models.Place, entry models.Place, limit int) []models.Place {
	out := make([]models.Place, 0, limit)
	out = append(out, entry)
	seen := map[string]bool{entry.Key(): true}
	for _, p := range list {
		if len(out) == limit {
			break
		}
		if p.Name == "" || seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	return out
}
