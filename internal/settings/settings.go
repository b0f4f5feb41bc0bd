// Package settings persists the user-supplied OpenWeather API key.
package settings

import (
	"context"
	"fmt"
	"strings"

	"weather-lookup/internal/logger"
	"weather-lookup/internal/storage"

	"go.uber.org/zap"
)

const APIKeyKey = "weather-app-api-key"

// Source tells where the active API key comes from.
type Source string

const (
	SourceNone   Source = ""
	SourceStored Source = "stored"
	SourceEnv    Source = "env"
)

// Store resolves the API key: a stored key wins over the environment fallback.
type Store struct {
	kv       storage.Store
	fallback string
	log      *zap.SugaredLogger
}

func New(kv storage.Store, fallback string) *Store {
	return &Store{kv: kv, fallback: strings.TrimSpace(fallback), log: logger.GetLogger()}
}

// APIKey implements api.KeySource.
func (s *Store) APIKey(ctx context.Context) string {
	key, _ := s.resolve(ctx)
	return key
}

// Status reports whether a key is configured and where it comes from.
func (s *Store) Status(ctx context.Context) (bool, Source) {
	key, src := s.resolve(ctx)
	return key != "", src
}

// SaveAPIKey stores a trimmed key; a blank key removes the stored one.
func (s *Store) SaveAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		if err := s.kv.Remove(ctx, APIKeyKey); err != nil {
			return fmt.Errorf("remove api key: %w", err)
		}
		s.log.Infow("API key removed")
		return nil
	}
	if err := s.kv.Set(ctx, APIKeyKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	s.log.Infow("API key saved", "key", logger.MaskSensitiveString(key, 3, 3))
	return nil
}

func (s *Store) resolve(ctx context.Context) (string, Source) {
	stored, ok, err := s.kv.Get(ctx, APIKeyKey)
	if err != nil {
		s.log.Warnw("Could not read stored API key", "error", err)
	}
	if stored = strings.TrimSpace(stored); ok && stored != "" {
		return stored, SourceStored
	}
	if s.fallback != "" {
		return s.fallback, SourceEnv
	}
	return "", SourceNone
}
