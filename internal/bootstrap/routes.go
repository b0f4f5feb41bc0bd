package bootstrap

import (
	"net/http"

	"weather-lookup/internal/api"
	"weather-lookup/internal/handlers"
	"weather-lookup/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitRoutes(h *HandlersBundle, keys api.KeySource, corsOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/cities", h.WeatherHandler.ListCities)
	r.Delete("/cities/{id}", h.WeatherHandler.RemoveCity)

	r.Get("/history", h.HistoryHandler.GetHistory)
	r.Post("/history", h.HistoryHandler.RecordSelection)
	r.Delete("/history", h.HistoryHandler.ClearHistory)

	r.Get("/settings/api-key", h.SettingsHandler.GetAPIKey)
	r.Put("/settings/api-key", h.SettingsHandler.PutAPIKey)
	r.Delete("/settings/api-key", h.SettingsHandler.DeleteAPIKey)

	r.Get("/icons/{code}", handlers.Icon)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyRequired(keys))
		r.Post("/cities", h.WeatherHandler.AddCity)
		r.Get("/suggestions", h.SearchHandler.Suggestions)
		r.Get("/ws/search", h.SearchHandler.LiveSearch)
	})

	return r
}
