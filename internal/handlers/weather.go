package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"weather-lookup/internal/models"
	"weather-lookup/internal/services"

	"github.com/go-chi/chi/v5"
)

type WeatherHandler struct {
	weatherService *services.WeatherService
}

func NewWeatherHandler(weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// addCityRequest carries either free text or a chosen suggestion.
type addCityRequest struct {
	Query string `json:"query"`
	models.Place
}

func (h *WeatherHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"cities": h.weatherService.Cities()})
}

func (h *WeatherHandler) AddCity(w http.ResponseWriter, r *http.Request) {
	var req addCityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "Cuerpo de la petición inválido")
		return
	}

	var (
		city models.City
		err  error
	)
	if strings.TrimSpace(req.Query) != "" || req.Name == "" {
		city, err = h.weatherService.SearchByName(r.Context(), req.Query)
	} else {
		city, err = h.weatherService.SearchByPlace(r.Context(), req.Place)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, city)
}

func (h *WeatherHandler) RemoveCity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, errBadRequest, "Identificador inválido")
		return
	}
	if !h.weatherService.Remove(id) {
		writeJSONError(w, http.StatusNotFound, "not_found", "La ciudad no está en la lista")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
