package marine

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

// WWO returns every number as a string.
type wwoHour struct {
	SigHeightM     string `json:"sigHeight_m"`
	SwellHeightM   string `json:"swellHeight_m"`
	SwellPeriodSec string `json:"swellPeriod_secs"`
	SwellDir       string `json:"swellDir"`
	WindspeedKmph  string `json:"windspeedKmph"`
	WinddirDegree  string `json:"winddirDegree"`
	WindGustKmph   string `json:"WindGustKmph"`
	TempC          string `json:"tempC"`
	Pressure       string `json:"pressure"`
	Humidity       string `json:"humidity"`
	Visibility     string `json:"visibility"`
	WeatherDesc    []struct {
		Value string `json:"value"`
	} `json:"weatherDesc"`
}

type wwoResponse struct {
	Data struct {
		Error []struct {
			Msg string `json:"msg"`
		} `json:"error"`
		Weather []struct {
			Hourly []wwoHour `json:"hourly"`
		} `json:"weather"`
	} `json:"data"`
}

// WorldWeatherSource is the secondary global marine provider.
type WorldWeatherSource struct {
	httpClient client.Interface
	apiKey     string
}

func NewWorldWeatherSource(httpClient client.Interface, apiKey string) *WorldWeatherSource {
	return &WorldWeatherSource{httpClient: httpClient, apiKey: apiKey}
}

func (s *WorldWeatherSource) Name() models.DataSource {
	return models.SourceWorldWeather
}

func (s *WorldWeatherSource) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	if s.apiKey == "" {
		return nil, NewProviderError(models.SourceWorldWeather, "API key not provided", nil)
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("q", formatCoord(lat)+","+formatCoord(lon))
	params.Set("format", "json")
	params.Set("tp", "1")

	var resp wwoResponse
	if err := getJSON(ctx, s.httpClient, models.SourceWorldWeather, "/marine.ashx?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.Error) > 0 {
		return nil, NewProviderError(models.SourceWorldWeather, resp.Data.Error[0].Msg, nil)
	}
	if len(resp.Data.Weather) == 0 || len(resp.Data.Weather[0].Hourly) == 0 {
		return nil, NewProviderError(models.SourceWorldWeather, "response has no hourly data", nil)
	}
	h := resp.Data.Weather[0].Hourly[0]

	sig := parseNumber(h.SigHeightM)
	windWave := DefaultWindWaveHeight
	if sig != nil {
		windWave = *sig * 0.3
	}
	description := "Marine conditions"
	if len(h.WeatherDesc) > 0 && strings.TrimSpace(h.WeatherDesc[0].Value) != "" {
		description = strings.TrimSpace(h.WeatherDesc[0].Value)
	}
	windDirection := orDefault(parseNumber(h.WinddirDegree), DefaultWindDirection)

	conditions := &models.MarineConditions{
		Location: models.Location{Name: locationName, Lat: lat, Lon: lon},
		Waves: models.Waves{
			SignificantHeight:     orDefault(sig, DefaultSignificantHeight),
			PrimarySwellHeight:    orDefault(parseNumber(h.SwellHeightM), DefaultPrimarySwellHeight),
			PrimarySwellPeriod:    orDefault(parseNumber(h.SwellPeriodSec), DefaultPrimarySwellPeriod),
			PrimarySwellDirection: orDefault(parseNumber(h.SwellDir), DefaultPrimarySwellDirection),
			WindWaveHeight:        windWave,
			WindWavePeriod:        DefaultWindWavePeriod,
			WindWaveDirection:     windDirection,
		},
		Wind: models.Wind{
			Speed:     scaled(parseNumber(h.WindspeedKmph), kmhToMetersPerSecond, DefaultWindSpeed),
			Direction: windDirection,
		},
		Weather: models.Weather{
			Temperature: orDefault(parseNumber(h.TempC), DefaultTemperature),
			Pressure:    orDefault(parseNumber(h.Pressure), DefaultPressure),
			Humidity:    orDefault(parseNumber(h.Humidity), DefaultHumidity),
			Visibility:  scaled(parseNumber(h.Visibility), 1000, DefaultVisibility),
			Description: description,
		},
		DataSource: models.SourceWorldWeather,
		Timestamp:  timestamp(),
	}
	if gust := parseNumber(h.WindGustKmph); gust != nil {
		g := *gust * kmhToMetersPerSecond
		conditions.Wind.Gusts = &g
	}
	return conditions, nil
}

// parseNumber returns nil for empty or unparseable strings.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func scaled(v *float64, factor, def float64) float64 {
	if v == nil {
		return def
	}
	return *v * factor
}
