package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"weather-lookup/internal/models"
)

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			TempMin float64 `json:"temp_min"`
			TempMax float64 `json:"temp_max"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast returns the raw 3-hourly samples for a coordinate pair. It never fails:
// any transport, status or decoding problem yields an empty list, which callers
// treat as "no forecast available".
func (c *Client) Forecast(ctx context.Context, lat, lon float64) []models.ForecastSample {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("units", c.units)
	params.Set("lang", c.lang)

	resp, err := c.get(ctx, forecastPath, params)
	if err != nil {
		c.log.Debugw("Forecast unavailable", "error", err)
		return []models.ForecastSample{}
	}
	if !resp.ok() {
		c.log.Debugw("Forecast unavailable", "status", resp.status)
		return []models.ForecastSample{}
	}

	var data forecastResponse
	if err := json.Unmarshal(resp.body, &data); err != nil {
		c.log.Debugw("Forecast payload malformed", "error", err)
		return []models.ForecastSample{}
	}

	samples := make([]models.ForecastSample, 0, len(data.List))
	for _, item := range data.List {
		if item.Dt == 0 || item.Main == nil {
			continue
		}
		s := models.ForecastSample{
			Time: time.Unix(item.Dt, 0).UTC(),
			Min:  item.Main.TempMin,
			Max:  item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			s.Icon = item.Weather[0].Icon
			s.Description = item.Weather[0].Description
		}
		samples = append(samples, s)
	}
	return samples
}
