package models

import (
	"fmt"
	"math"
	"time"
)

// WeatherRecord is the normalized current-conditions card for one city.
type WeatherRecord struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feelsLike"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Wind        float64 `json:"wind"`
	Clouds      int     `json:"clouds"`
	Condition   string  `json:"weather"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// ForecastSample is one 3-hour step of the upstream forecast feed.
type ForecastSample struct {
	Time        time.Time `json:"time"`
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

// DailyForecast summarizes the samples of one calendar day.
type DailyForecast struct {
	Date        string `json:"date"`
	DayName     string `json:"dayName"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// City is a displayed card: current conditions plus an optional forecast.
type City struct {
	WeatherRecord
	Forecast []DailyForecast `json:"forecast"`
}

// HasForecast reports whether the forecast affordance should be shown.
func (c City) HasForecast() bool {
	return len(c.Forecast) > 0
}

// Round rounds to the nearest integer with halves going up (2.5 -> 3, -2.5 -> -2).
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// IconURL returns the OpenWeather icon image for a condition code.
func IconURL(code, size string) string {
	if size == "" {
		size = "2x"
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@%s.png", code, size)
}
