package models

import "context"

// Geocoder turns free text into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Location, error)
}

// MarineFetcher returns the current marine conditions at a point.
type MarineFetcher interface {
	Fetch(ctx context.Context, lat, lon float64, locationName string) (*MarineConditions, error)
}

type SpotResolver interface {
	Resolve(location, countryCode string) SpotConfiguration
}

// NarrativeGenerator produces forecast prose from a prompt.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
