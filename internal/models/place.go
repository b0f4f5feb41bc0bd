package models

import "time"

// Place is a geocoder candidate or a stored history entry.
// Lat/Lon are optional for history entries recorded without coordinates.
type Place struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	State   string   `json:"state,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key is the deduplication identity: name and country, case-sensitive.
func (p Place) Key() string {
	return p.Name + "|" + p.Country
}

// HasCoords reports whether both coordinates are present.
func (p Place) HasCoords() bool {
	return p.Lat != nil && p.Lon != nil
}

// NewPlace builds a place with coordinates.
func NewPlace(name, country string, lat, lon float64) Place {
	return Place{Name: name, Country: country, Lat: &lat, Lon: &lon}
}

const (
	EventCityAdded   = "city_added"
	EventCityRemoved = "city_removed"
)

// LookupEvent is published whenever the displayed city list changes.
type LookupEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	CityID    int64     `json:"cityId"`
	Place     Place     `json:"place"`
	Timestamp time.Time `json:"timestamp"`
}
