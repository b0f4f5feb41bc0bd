package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"weather-lookup/internal/models"
)

const coordsNotFound = "Ubicación no encontrada."

type currentResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

// WeatherByName looks up current conditions for a free-text city name.
// Blank input fails with ErrEmptyQuery without any network call.
func (c *Client) WeatherByName(ctx context.Context, city string) (models.WeatherRecord, error) {
	q := strings.TrimSpace(city)
	if q == "" {
		return models.WeatherRecord{}, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("q", q)
	return c.currentWeather(ctx, params, ErrNotFound.Message)
}

// WeatherByCoords looks up current conditions for a coordinate pair.
func (c *Client) WeatherByCoords(ctx context.Context, lat, lon float64) (models.WeatherRecord, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	return c.currentWeather(ctx, params, coordsNotFound)
}

func (c *Client) currentWeather(ctx context.Context, params url.Values, notFound string) (models.WeatherRecord, error) {
	params.Set("units", c.units)
	params.Set("lang", c.lang)

	resp, err := c.get(ctx, weatherPath, params)
	if err != nil {
		return models.WeatherRecord{}, asLookupError(err)
	}
	if !resp.ok() {
		lerr := classifyStatus(resp.status, upstreamMessage(resp.body), notFound)
		c.log.Infow("Weather lookup rejected", "status", resp.status, "kind", lerr.Kind)
		return models.WeatherRecord{}, lerr
	}

	rec, err := normalizeWeather(resp.body)
	if err != nil {
		return models.WeatherRecord{}, &LookupError{
			Kind:    KindServer,
			Status:  resp.status,
			Message: "Respuesta inválida del servicio del clima.",
			Err:     err,
		}
	}
	return rec, nil
}

// normalizeWeather flattens the upstream payload. Missing optional fields become
// zero values; a missing condition falls back to the clear-sky icon.
func normalizeWeather(body []byte) (models.WeatherRecord, error) {
	var data currentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return models.WeatherRecord{}, fmt.Errorf("invalid JSON format: %w", err)
	}
	if data.Main == nil {
		return models.WeatherRecord{}, errors.New("missing main block")
	}

	rec := models.WeatherRecord{
		ID:        data.ID,
		Name:      data.Name,
		Country:   data.Sys.Country,
		Temp:      models.Round(data.Main.Temp),
		FeelsLike: models.Round(data.Main.FeelsLike),
		Min:       models.Round(data.Main.TempMin),
		Max:       models.Round(data.Main.TempMax),
		Humidity:  int(data.Main.Humidity),
		Pressure:  int(data.Main.Pressure),
		Wind:      data.Wind.Speed,
		Clouds:    int(data.Clouds.All),
		Icon:      "01d",
	}
	if len(data.Weather) > 0 {
		w := data.Weather[0]
		rec.Condition = w.Main
		rec.Description = w.Description
		if w.Icon != "" {
			rec.Icon = w.Icon
		}
	}
	if data.Coord != nil {
		rec.Lat = data.Coord.Lat
		rec.Lon = data.Coord.Lon
	}
	return rec, nil
}

func asLookupError(err error) error {
	var le *LookupError
	if errors.As(err, &le) || errors.Is(err, context.Canceled) {
		return err
	}
	return &LookupError{Kind: KindServer, Message: "No se pudo contactar con el servicio del clima.", Err: err}
}
