// Package geocode resolves free-text locations to coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

// ErrLocationNotFound is returned when the geocoder has no match.
var ErrLocationNotFound = errors.New("location not found")

type directResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
}

// OpenWeatherGeocoder uses the OpenWeather direct geocoding API.
type OpenWeatherGeocoder struct {
	httpClient client.Interface
	apiKey     string
}

func NewOpenWeatherGeocoder(httpClient client.Interface, apiKey string) *OpenWeatherGeocoder {
	return &OpenWeatherGeocoder{httpClient: httpClient, apiKey: apiKey}
}

func (g *OpenWeatherGeocoder) Geocode(ctx context.Context, query string) (*models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrLocationNotFound
	}
	if g.apiKey == "" {
		return nil, fmt.Errorf("geocoding %q: API key not provided", query)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("appid", g.apiKey)

	resp, err := g.httpClient.Get(ctx, "/geo/1.0/direct?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("geocoding %q: unexpected status %d", query, resp.StatusCode)
	}

	var results []directResult
	if err := json.Unmarshal(resp.Body, &results); err != nil {
		return nil, fmt.Errorf("geocoding %q: decoding response: %w", query, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, query)
	}

	r := results[0]
	name := r.Name
	if name == "" {
		name = query
	}
	return &models.Location{Name: name, Lat: r.Lat, Lon: r.Lon, Country: r.Country}, nil
}
