package models

import (
	"fmt"
	"math"
)

type TideDirection string

const (
	TideRising  TideDirection = "rising"
	TideFalling TideDirection = "falling"
	TideHigh    TideDirection = "high"
	TideLow     TideDirection = "low"
)

// SurfConditions is the normalized input to scoring.
// Directions are compass degrees and are interpreted modulo 360.
type SurfConditions struct {
	WaveHeight     float64        `json:"waveHeight"`
	WavePeriod     float64        `json:"wavePeriod"`
	SwellDirection float64        `json:"swellDirection"`
	WindSpeed      float64        `json:"windSpeed"`
	WindDirection  float64        `json:"windDirection"`
	TideHeight     *float64       `json:"tideHeight,omitempty"`
	TideDirection  *TideDirection `json:"tideDirection,omitempty"`
	Location       string         `json:"location"`
}

// Validate checks the physical ranges of the conditions
func (c SurfConditions) Validate() error {
	for name, v := range map[string]float64{
		"wave height":     c.WaveHeight,
		"wave period":     c.WavePeriod,
		"swell direction": c.SwellDirection,
		"wind speed":      c.WindSpeed,
		"wind direction":  c.WindDirection,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite", name)
		}
	}
	if c.WaveHeight < 0 {
		return fmt.Errorf("invalid wave height: %.2f", c.WaveHeight)
	}
	if c.WavePeriod <= 0 {
		return fmt.Errorf("invalid wave period: %.2f", c.WavePeriod)
	}
	if c.WindSpeed < 0 {
		return fmt.Errorf("invalid wind speed: %.2f", c.WindSpeed)
	}
	return nil
}

type BreakType string

const (
	BeachBreak BreakType = "beach_break"
	PointBreak BreakType = "point_break"
	ReefBreak  BreakType = "reef_break"
	RiverMouth BreakType = "river_mouth"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

// Range is an inclusive [Min, Max] pair. For directions Min may exceed Max,
// in which case the range wraps through north.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SpotConfiguration describes what a surf break needs to work well.
type SpotConfiguration struct {
	Name                  string     `json:"name"`
	Type                  BreakType  `json:"type"`
	Aspect                float64    `json:"aspect"`
	OptimalWaveHeight     Range      `json:"optimalWaveHeight"`
	OptimalSwellDirection Range      `json:"optimalSwellDirection"`
	OptimalTideRange      *Range     `json:"optimalTideRange,omitempty"`
	Difficulty            Difficulty `json:"difficulty"`
}

// Validate checks a spot definition loaded from outside the binary
func (s SpotConfiguration) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("spot name is required")
	}
	switch s.Type {
	case BeachBreak, PointBreak, ReefBreak, RiverMouth:
	default:
		return fmt.Errorf("invalid break type: %s", s.Type)
	}
	switch s.Difficulty {
	case Beginner, Intermediate, Advanced, Expert:
	default:
		return fmt.Errorf("invalid difficulty: %s", s.Difficulty)
	}
	if s.OptimalWaveHeight.Min <= 0 || s.OptimalWaveHeight.Max < s.OptimalWaveHeight.Min {
		return fmt.Errorf("invalid optimal wave height: %.1f-%.1f", s.OptimalWaveHeight.Min, s.OptimalWaveHeight.Max)
	}
	return nil
}

// OptimalConditions renders the spot's sweet spot, e.g. "1-2.5m waves from 200-280°".
func (s SpotConfiguration) OptimalConditions() string {
	return fmt.Sprintf("%s-%sm waves from %s-%s°",
		FormatNumber(s.OptimalWaveHeight.Min), FormatNumber(s.OptimalWaveHeight.Max),
		FormatNumber(s.OptimalSwellDirection.Min), FormatNumber(s.OptimalSwellDirection.Max))
}

type ScoreBreakdown struct {
	WaveHeight     float64 `json:"waveHeight"`
	WavePeriod     float64 `json:"wavePeriod"`
	Wind           float64 `json:"wind"`
	SwellDirection float64 `json:"swellDirection"`
}

type SurfQuality struct {
	OverallScore int            `json:"overallScore"`
	Rating       string         `json:"rating"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
	Description  string         `json:"description"`
}
