package marine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

const noaaUserAgent = "swellcast/1.0 (github.com/surfhub/swellcast)"

// NOAA gridded wave output is GRIB2, which this adapter does not decode;
// the wave block carries fixed regional estimates.
const (
	noaaSignificantHeight  = 1.5
	noaaPrimarySwellHeight = 1.2
	noaaWindWaveHeight     = 0.5
)

var compassDegrees = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
}

var firstNumber = regexp.MustCompile(`\d+(\.\d+)?`)

type noaaPointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type noaaPeriod struct {
	Temperature     *float64 `json:"temperature"`
	TemperatureUnit string   `json:"temperatureUnit"`
	WindSpeed       string   `json:"windSpeed"`
	WindDirection   string   `json:"windDirection"`
	ShortForecast   string   `json:"shortForecast"`
}

type noaaForecastResponse struct {
	Properties struct {
		Periods []noaaPeriod `json:"periods"`
	} `json:"properties"`
}

// NOAASource reads api.weather.gov point forecasts. It needs no API key but
// only answers inside US coverage.
type NOAASource struct {
	httpClient client.Interface
}

func NewNOAASource(httpClient client.Interface) *NOAASource {
	return &NOAASource{httpClient: httpClient}
}

// NewNOAAClient returns an HTTP client with the headers api.weather.gov expects.
func NewNOAAClient(baseURL string, timeout time.Duration) *client.Client {
	return client.New(client.Options{
		BaseURL: baseURL,
		Timeout: timeout,
		Headers: map[string]string{
			"User-Agent": noaaUserAgent,
			"Accept":     "application/geo+json",
		},
	})
}

func (s *NOAASource) Name() models.DataSource {
	return models.SourceNOAA
}

func (s *NOAASource) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	var points noaaPointsResponse
	if err := getJSON(ctx, s.httpClient, models.SourceNOAA, fmt.Sprintf("/points/%.4f,%.4f", lat, lon), &points); err != nil {
		return nil, err
	}
	if points.Properties.Forecast == "" {
		return nil, NewProviderError(models.SourceNOAA, "no forecast available for point", nil)
	}

	var forecast noaaForecastResponse
	if err := getJSON(ctx, s.httpClient, models.SourceNOAA, points.Properties.Forecast, &forecast); err != nil {
		return nil, err
	}
	if len(forecast.Properties.Periods) == 0 {
		return nil, NewProviderError(models.SourceNOAA, "forecast has no periods", nil)
	}
	current := forecast.Properties.Periods[0]

	log.Debug().
		Str("forecast_url", points.Properties.Forecast).
		Str("wind", current.WindSpeed).
		Msg("NOAA forecast period")

	return &models.MarineConditions{
		Location: models.Location{Name: locationName, Lat: lat, Lon: lon, Country: "US"},
		Waves: models.Waves{
			SignificantHeight:     noaaSignificantHeight,
			PrimarySwellHeight:    noaaPrimarySwellHeight,
			PrimarySwellPeriod:    DefaultPrimarySwellPeriod,
			PrimarySwellDirection: DefaultPrimarySwellDirection,
			WindWaveHeight:        noaaWindWaveHeight,
			WindWavePeriod:        DefaultWindWavePeriod,
			WindWaveDirection:     DefaultWindWaveDirection,
		},
		Wind: models.Wind{
			Speed:     parseWindSpeedMPH(current.WindSpeed),
			Direction: parseCompass(current.WindDirection),
		},
		Weather: models.Weather{
			Temperature: celsius(current.Temperature, current.TemperatureUnit),
			Pressure:    DefaultPressure,
			Humidity:    DefaultHumidity,
			Visibility:  DefaultVisibility,
			Description: current.ShortForecast,
		},
		DataSource: models.SourceNOAA,
		Timestamp:  timestamp(),
	}, nil
}

// parseWindSpeedMPH reads the first number of strings like "10 mph" or
// "5 to 10 mph" and converts it to m/s.
func parseWindSpeedMPH(s string) float64 {
	match := firstNumber.FindString(s)
	if match == "" {
		return DefaultWindSpeed
	}
	mph, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return DefaultWindSpeed
	}
	return mph * mphToMetersPerSecond
}

func parseCompass(s string) float64 {
	if deg, ok := compassDegrees[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return deg
	}
	return DefaultWindDirection
}

func celsius(temp *float64, unit string) float64 {
	if temp == nil {
		return DefaultTemperature
	}
	if strings.EqualFold(unit, "F") {
		return (*temp - 32) * 5 / 9
	}
	return *temp
}
