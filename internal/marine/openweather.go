package marine

import (
	"context"
	"math"
	"net/url"

	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

type owWeatherResponse struct {
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Pressure *float64 `json:"pressure"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Visibility *float64 `json:"visibility"`
	Weather    []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// OpenWeatherSource never sees the ocean. It estimates a wave block from
// local wind: height grows with wind speed, and the swell is assumed to
// arrive from the reciprocal of the wind direction. That is a crude
// heuristic, not a swell prediction.
type OpenWeatherSource struct {
	httpClient client.Interface
	apiKey     string
}

func NewOpenWeatherSource(httpClient client.Interface, apiKey string) *OpenWeatherSource {
	return &OpenWeatherSource{httpClient: httpClient, apiKey: apiKey}
}

func (s *OpenWeatherSource) Name() models.DataSource {
	return models.SourceOpenWeather
}

func (s *OpenWeatherSource) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	if s.apiKey == "" {
		return nil, NewProviderError(models.SourceOpenWeather, "API key not provided", nil)
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	var resp owWeatherResponse
	if err := getJSON(ctx, s.httpClient, models.SourceOpenWeather, "/data/2.5/weather?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	windSpeed := orDefault(resp.Wind.Speed, DefaultWindSpeed)
	windDirection := orDefault(resp.Wind.Deg, DefaultWindDirection)
	waves := EstimateWaves(windSpeed, windDirection)

	description := "Clear conditions"
	if len(resp.Weather) > 0 && resp.Weather[0].Description != "" {
		description = resp.Weather[0].Description
	}

	return &models.MarineConditions{
		Location: models.Location{Name: locationName, Lat: lat, Lon: lon, Country: resp.Sys.Country},
		Waves:    waves,
		Wind: models.Wind{
			Speed:     windSpeed,
			Direction: windDirection,
			Gusts:     resp.Wind.Gust,
		},
		Weather: models.Weather{
			Temperature: orDefault(resp.Main.Temp, DefaultTemperature),
			Pressure:    orDefault(resp.Main.Pressure, DefaultPressure),
			Humidity:    orDefault(resp.Main.Humidity, DefaultHumidity),
			Visibility:  orDefault(resp.Visibility, DefaultVisibility),
			Description: description,
		},
		DataSource: models.SourceOpenWeather,
		Timestamp:  timestamp(),
	}, nil
}

// EstimateWaves derives a wave block from wind alone.
func EstimateWaves(windSpeed, windDirection float64) models.Waves {
	height := math.Max(0.3, windSpeed*0.15)
	period := math.Min(12, math.Max(4, windSpeed*0.4+4))
	return models.Waves{
		SignificantHeight:     height,
		PrimarySwellHeight:    height * 0.7,
		PrimarySwellPeriod:    period,
		PrimarySwellDirection: math.Mod(math.Mod(windDirection+180, 360)+360, 360),
		WindWaveHeight:        height * 0.3,
		WindWavePeriod:        math.Max(3, period*0.5),
		WindWaveDirection:     windDirection,
	}
}
