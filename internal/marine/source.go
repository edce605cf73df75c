// Package marine fetches current marine conditions from upstream providers
// and normalizes them into models.MarineConditions.
package marine

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// Source is a single upstream marine data provider.
type Source interface {
	Name() models.DataSource
	Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error)
}

// Field defaults substituted for anything a provider leaves out.
const (
	DefaultSignificantHeight     = 1.0
	DefaultPrimarySwellHeight    = 0.8
	DefaultPrimarySwellPeriod    = 8.0
	DefaultPrimarySwellDirection = 225.0
	DefaultWindWaveHeight        = 0.3
	DefaultWindWavePeriod        = 4.0
	DefaultWindWaveDirection     = 270.0
	DefaultWindSpeed             = 5.0
	DefaultWindDirection         = 270.0
	DefaultTemperature           = 20.0
	DefaultPressure              = 1013.0
	DefaultHumidity              = 70.0
	DefaultVisibility            = 10000.0
)

const (
	mphToMetersPerSecond = 0.44704
	kmhToMetersPerSecond = 0.277778
)

// clock is the package time source; tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

func timestamp() string {
	return clock.Now().UTC().Format(time.RFC3339)
}

// UnavailableConditions is the conservative stand-in used when no provider
// could answer.
func UnavailableConditions(loc models.Location) *models.MarineConditions {
	return &models.MarineConditions{
		Location: loc,
		Waves: models.Waves{
			SignificantHeight:     1.0,
			PrimarySwellHeight:    0.8,
			PrimarySwellPeriod:    8,
			PrimarySwellDirection: 180,
			WindWaveHeight:        DefaultWindWaveHeight,
			WindWavePeriod:        DefaultWindWavePeriod,
			WindWaveDirection:     DefaultWindWaveDirection,
		},
		Wind: models.Wind{Speed: DefaultWindSpeed, Direction: DefaultWindDirection},
		Weather: models.Weather{
			Temperature: DefaultTemperature,
			Pressure:    DefaultPressure,
			Humidity:    DefaultHumidity,
			Visibility:  DefaultVisibility,
			Description: "Conditions unavailable",
		},
		DataSource: models.SourceUnavailable,
		Timestamp:  timestamp(),
	}
}

// orDefault treats a missing JSON number as absent; zero is a real reading.
func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
