package models

import (
	"fmt"
	"math"
)

type DataSource string

const (
	SourceNOAA         DataSource = "noaa"
	SourceStormglass   DataSource = "stormglass"
	SourceWorldWeather DataSource = "worldweatheronline"
	SourceOpenWeather  DataSource = "openweather"
	SourceUnavailable  DataSource = "unavailable"
)

type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country,omitempty"`
}

type Waves struct {
	SignificantHeight       float64  `json:"significantHeight"`
	PrimarySwellHeight      float64  `json:"primarySwellHeight"`
	PrimarySwellPeriod      float64  `json:"primarySwellPeriod"`
	PrimarySwellDirection   float64  `json:"primarySwellDirection"`
	SecondarySwellHeight    *float64 `json:"secondarySwellHeight,omitempty"`
	SecondarySwellPeriod    *float64 `json:"secondarySwellPeriod,omitempty"`
	SecondarySwellDirection *float64 `json:"secondarySwellDirection,omitempty"`
	WindWaveHeight          float64  `json:"windWaveHeight"`
	WindWavePeriod          float64  `json:"windWavePeriod"`
	WindWaveDirection       float64  `json:"windWaveDirection"`
}

type Wind struct {
	Speed     float64  `json:"speed"`
	Direction float64  `json:"direction"`
	Gusts     *float64 `json:"gusts,omitempty"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Pressure    float64 `json:"pressure"`
	Humidity    float64 `json:"humidity"`
	Visibility  float64 `json:"visibility"`
	Description string  `json:"description"`
}

type Tides struct {
	CurrentHeight float64 `json:"currentHeight"`
	NextHigh      string  `json:"nextHigh,omitempty"`
	NextLow       string  `json:"nextLow,omitempty"`
}

// MarineConditions is what a marine data adapter returns: one fresh
// observation per request, never cached.
type MarineConditions struct {
	Location   Location   `json:"location"`
	Waves      Waves      `json:"waves"`
	Wind       Wind       `json:"wind"`
	Weather    Weather    `json:"weather"`
	Tides      *Tides     `json:"tides,omitempty"`
	DataSource DataSource `json:"dataSource"`
	Timestamp  string     `json:"timestamp"`
}

// ToSurfConditions projects marine data onto the scoring input.
func (m *MarineConditions) ToSurfConditions() SurfConditions {
	sc := SurfConditions{
		WaveHeight:     m.Waves.SignificantHeight,
		WavePeriod:     m.Waves.PrimarySwellPeriod,
		SwellDirection: m.Waves.PrimarySwellDirection,
		WindSpeed:      m.Wind.Speed,
		WindDirection:  m.Wind.Direction,
		Location:       m.Location.Name,
	}
	if m.Tides != nil {
		height := m.Tides.CurrentHeight
		sc.TideHeight = &height
	}
	return sc
}

// Validate rejects payloads with non-finite numbers, which would otherwise
// flow silently into scoring.
func (m *MarineConditions) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"significant height", m.Waves.SignificantHeight},
		{"primary swell height", m.Waves.PrimarySwellHeight},
		{"primary swell period", m.Waves.PrimarySwellPeriod},
		{"primary swell direction", m.Waves.PrimarySwellDirection},
		{"wind wave height", m.Waves.WindWaveHeight},
		{"wind wave period", m.Waves.WindWavePeriod},
		{"wind wave direction", m.Waves.WindWaveDirection},
		{"wind speed", m.Wind.Speed},
		{"wind direction", m.Wind.Direction},
		{"temperature", m.Weather.Temperature},
		{"pressure", m.Weather.Pressure},
		{"humidity", m.Weather.Humidity},
		{"visibility", m.Weather.Visibility},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s is not finite", f.name)
		}
	}
	if m.DataSource == "" {
		return fmt.Errorf("data source is required")
	}
	return nil
}
