// Package services holds the list of displayed cities and the lookup flow behind it.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"weather-lookup/internal/forecast"
	"weather-lookup/internal/logger"
	"weather-lookup/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyShown is returned when the looked-up city is already on the list.
var ErrAlreadyShown = errors.New("city already shown")

// WeatherClient is the subset of *api.Client the lookup flow needs.
type WeatherClient interface {
	WeatherByName(ctx context.Context, city string) (models.WeatherRecord, error)
	WeatherByCoords(ctx context.Context, lat, lon float64) (models.WeatherRecord, error)
	Forecast(ctx context.Context, lat, lon float64) []models.ForecastSample
}

type HistoryRecorder interface {
	RecordSelection(ctx context.Context, place models.Place) bool
}

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	PublishObjectAsync(key []byte, obj interface{})
}

type WeatherService struct {
	client  WeatherClient
	history HistoryRecorder
	events  EventPublisher
	source  string
	log     *zap.SugaredLogger

	mu     sync.RWMutex
	cities []models.City
}

// NewWeatherService wires the lookup flow. events may be nil; source tags
// published events with this instance's id.
func NewWeatherService(client WeatherClient, history HistoryRecorder, events EventPublisher, source string) *WeatherService {
	return &WeatherService{
		client:  client,
		history: history,
		events:  events,
		source:  source,
		log:     logger.GetLogger(),
		cities:  []models.City{},
	}
}

// SearchByName looks a city up by free text and appends it to the list.
func (s *WeatherService) SearchByName(ctx context.Context, text string) (models.City, error) {
	rec, err := s.client.WeatherByName(ctx, text)
	if err != nil {
		s.log.Infow("Weather lookup failed", "query", strings.TrimSpace(text), "error", err)
		return models.City{}, err
	}
	return s.add(ctx, rec)
}

// SearchByPlace looks up a chosen suggestion by coordinates. A place without
// coordinates falls back to a "name,country" lookup.
func (s *WeatherService) SearchByPlace(ctx context.Context, place models.Place) (models.City, error) {
	if !place.HasCoords() {
		q := place.Name
		if place.Name != "" && place.Country != "" {
			q = place.Name + "," + place.Country
		}
		return s.SearchByName(ctx, q)
	}

	rec, err := s.client.WeatherByCoords(ctx, *place.Lat, *place.Lon)
	if err != nil {
		s.log.Infow("Weather lookup failed", "place", place.Key(), "error", err)
		return models.City{}, err
	}
	return s.add(ctx, rec)
}

func (s *WeatherService) add(ctx context.Context, rec models.WeatherRecord) (models.City, error) {
	city := models.City{
		WeatherRecord: rec,
		Forecast:      forecast.Aggregate(s.client.Forecast(ctx, rec.Lat, rec.Lon)),
	}

	place := models.NewPlace(rec.Name, rec.Country, rec.Lat, rec.Lon)
	s.history.RecordSelection(ctx, place)

	s.mu.Lock()
	if s.shownLocked(rec) {
		s.mu.Unlock()
		return city, ErrAlreadyShown
	}
	s.cities = append(s.cities, city)
	s.mu.Unlock()

	s.log.Infow("City added", "id", rec.ID, "name", rec.Name, "country", rec.Country, "forecastDays", len(city.Forecast))
	s.publish(models.EventCityAdded, rec.ID, place)
	return city, nil
}

func (s *WeatherService) shownLocked(rec models.WeatherRecord) bool {
	for _, c := range s.cities {
		if rec.ID != 0 && c.ID == rec.ID {
			return true
		}
		if rec.ID == 0 && c.Name == rec.Name {
			return true
		}
	}
	return false
}

// Remove drops the card with the given id. It reports false for an unknown id.
func (s *WeatherService) Remove(id int64) bool {
	s.mu.Lock()
	idx := -1
	for i, c := range s.cities {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.cities[idx]
	s.cities = append(s.cities[:idx], s.cities[idx+1:]...)
	s.mu.Unlock()

	s.log.Infow("City removed", "id", id, "name", removed.Name)
	s.publish(models.EventCityRemoved, id, models.NewPlace(removed.Name, removed.Country, removed.Lat, removed.Lon))
	return true
}

// Cities returns the displayed cities in insertion order.
func (s *WeatherService) Cities() []models.City {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.City, len(s.cities))
	copy(out, s.cities)
	return out
}

func (s *WeatherService) publish(kind string, id int64, place models.Place) {
	if s.events == nil {
		return
	}
	evt := models.LookupEvent{
		ID:        uuid.NewString(),
		Type:      kind,
		Source:    s.source,
		CityID:    id,
		Place:     place,
		Timestamp: time.Now().UTC(),
	}
	s.events.PublishObjectAsync([]byte(strconv.FormatInt(id, 10)), evt)
}
