package models

import (
	"fmt"
	"strings"
)

// GeocodeRecord is a cached geocoding result keyed by normalized query.
type GeocodeRecord struct {
	Query       string  `dynamodbav:"query"`
	Name        string  `dynamodbav:"name"`
	Lat         float64 `dynamodbav:"lat"`
	Lon         float64 `dynamodbav:"lon"`
	Country     string  `dynamodbav:"country"`
	LastUpdated int64   `dynamodbav:"lastUpdated"`
	TTL         int64   `dynamodbav:"ttl"`
}

// NormalizeQuery produces the cache key for a free-text location.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Validate checks if a GeocodeRecord's fields are valid
func (r *GeocodeRecord) Validate() error {
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	if r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("invalid latitude: %f", r.Lat)
	}
	if r.Lon < -180 || r.Lon > 180 {
		return fmt.Errorf("invalid longitude: %f", r.Lon)
	}
	return nil
}

func (r *GeocodeRecord) Location() *Location {
	return &Location{Name: r.Name, Lat: r.Lat, Lon: r.Lon, Country: r.Country}
}
