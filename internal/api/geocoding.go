package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"weather-lookup/internal/models"
)

const MaxSuggestions = 5

// Suggest returns up to limit place candidates for free text, limit clamped to 1..5.
// Suggestions are an enrichment: every failure degrades to an empty list.
func (c *Client) Suggest(ctx context.Context, text string, limit int) []models.Place {
	q := strings.TrimSpace(text)
	if q == "" {
		return []models.Place{}
	}
	limit = min(MaxSuggestions, max(1, limit))

	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))

	resp, err := c.get(ctx, geocodePath, params)
	if err != nil || !resp.ok() {
		c.log.Debugw("Suggestions unavailable", "query", q, "status", resp.status, "error", err)
		return []models.Place{}
	}

	var results []struct {
		Name    string   `json:"name"`
		Country string   `json:"country"`
		State   string   `json:"state"`
		Lat     *float64 `json:"lat"`
		Lon     *float64 `json:"lon"`
	}
	if err := json.Unmarshal(resp.body, &results); err != nil {
		c.log.Debugw("Suggestions payload malformed", "query", q, "error", err)
		return []models.Place{}
	}

	places := make([]models.Place, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		places = append(places, models.Place{Name: r.Name, Country: r.Country, State: r.State, Lat: r.Lat, Lon: r.Lon})
		if len(places) == limit {
			break
		}
	}
	return places
}
