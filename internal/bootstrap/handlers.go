package bootstrap

import (
	"weather-lookup/internal/api"
	"weather-lookup/internal/config"
	"weather-lookup/internal/handlers"
	"weather-lookup/internal/history"
	"weather-lookup/internal/services"
	"weather-lookup/internal/settings"
	"weather-lookup/internal/storage"
)

type HandlersBundle struct {
	WeatherHandler  *handlers.WeatherHandler
	SearchHandler   *handlers.SearchHandler
	HistoryHandler  *handlers.HistoryHandler
	SettingsHandler *handlers.SettingsHandler
}

type BootstrapBundle struct {
	Handlers *HandlersBundle
	Settings *settings.Store
	History  *history.Store
	Weather  *services.WeatherService
}

// InitBootstrap builds the services and handlers on top of kv. events may be nil.
func InitBootstrap(cfg *config.Config, kv storage.Store, events services.EventPublisher) *BootstrapBundle {
	settingsStore := settings.New(kv, cfg.OpenWeatherAPIKey)
	historyStore := history.New(kv)

	client := api.NewClient(settingsStore, api.Options{
		BaseURL:           cfg.OpenWeatherBaseURL,
		Lang:              cfg.Lang,
		Units:             cfg.Units,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	weatherService := services.NewWeatherService(client, historyStore, events, cfg.InstanceID)

	return &BootstrapBundle{
		Handlers: &HandlersBundle{
			WeatherHandler:  handlers.NewWeatherHandler(weatherService),
			SearchHandler:   handlers.NewSearchHandler(client, historyStore, cfg.SearchDebounce),
			HistoryHandler:  handlers.NewHistoryHandler(historyStore),
			SettingsHandler: handlers.NewSettingsHandler(settingsStore),
		},
		Settings: settingsStore,
		History:  historyStore,
		Weather:  weatherService,
	}
}
