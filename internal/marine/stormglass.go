package marine

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
	"golang.org/x/sync/errgroup"
)

var stormglassParams = []string{
	"waveHeight",
	"wavePeriod",
	"waveDirection",
	"swellHeight",
	"swellPeriod",
	"swellDirection",
	"windWaveHeight",
	"windWavePeriod",
	"windWaveDirection",
	"windSpeed",
	"windDirection",
	"gust",
	"airTemperature",
	"pressure",
	"humidity",
	"visibility",
}

// sgValue holds one parameter as reported by the models Stormglass blends.
type sgValue struct {
	NOAA *float64 `json:"noaa"`
	SG   *float64 `json:"sg"`
}

// value prefers the NOAA model reading, then Stormglass's own.
func (v *sgValue) value(def float64) float64 {
	if v == nil {
		return def
	}
	if v.NOAA != nil {
		return *v.NOAA
	}
	return orDefault(v.SG, def)
}

func (v *sgValue) present() bool {
	return v != nil && (v.NOAA != nil || v.SG != nil)
}

type sgHour struct {
	Time              string   `json:"time"`
	WaveHeight        *sgValue `json:"waveHeight"`
	SwellHeight       *sgValue `json:"swellHeight"`
	SwellPeriod       *sgValue `json:"swellPeriod"`
	SwellDirection    *sgValue `json:"swellDirection"`
	WindWaveHeight    *sgValue `json:"windWaveHeight"`
	WindWavePeriod    *sgValue `json:"windWavePeriod"`
	WindWaveDirection *sgValue `json:"windWaveDirection"`
	WindSpeed         *sgValue `json:"windSpeed"`
	WindDirection     *sgValue `json:"windDirection"`
	Gust              *sgValue `json:"gust"`
	AirTemperature    *sgValue `json:"airTemperature"`
	Pressure          *sgValue `json:"pressure"`
	Humidity          *sgValue `json:"humidity"`
	Visibility        *sgValue `json:"visibility"`
}

type sgWeatherResponse struct {
	Hours []sgHour `json:"hours"`
}

type sgSeaLevelResponse struct {
	Data []struct {
		SG   *float64 `json:"sg"`
		Time string   `json:"time"`
	} `json:"data"`
}

type sgExtremesResponse struct {
	Data []struct {
		Height float64 `json:"height"`
		Time   string  `json:"time"`
		Type   string  `json:"type"`
	} `json:"data"`
}

// StormglassSource is the premium global marine provider. Weather and tide
// endpoints are queried concurrently; a tide failure only drops the tide
// block.
type StormglassSource struct {
	httpClient client.Interface
	apiKey     string
}

func NewStormglassSource(httpClient client.Interface, apiKey string) *StormglassSource {
	return &StormglassSource{httpClient: httpClient, apiKey: apiKey}
}

// NewStormglassClient returns an HTTP client that authenticates with apiKey.
func NewStormglassClient(baseURL, apiKey string, timeout time.Duration) *client.Client {
	return client.New(client.Options{
		BaseURL: baseURL,
		Timeout: timeout,
		Headers: map[string]string{"Authorization": apiKey},
	})
}

func (s *StormglassSource) Name() models.DataSource {
	return models.SourceStormglass
}

func (s *StormglassSource) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	if s.apiKey == "" {
		return nil, NewProviderError(models.SourceStormglass, "API key not provided", nil)
	}

	point := url.Values{}
	point.Set("lat", formatCoord(lat))
	point.Set("lng", formatCoord(lon))

	now := clock.Now().UTC()
	tideWindow := url.Values{}
	tideWindow.Set("lat", formatCoord(lat))
	tideWindow.Set("lng", formatCoord(lon))
	tideWindow.Set("start", now.Format(time.RFC3339))
	tideWindow.Set("end", now.Add(24*time.Hour).Format(time.RFC3339))

	var (
		weather  sgWeatherResponse
		seaLevel sgSeaLevelResponse
		extremes sgExtremesResponse
		tideErr  error
		extErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		params := url.Values{}
		for k, v := range point {
			params[k] = v
		}
		params.Set("params", strings.Join(stormglassParams, ","))
		return getJSON(gctx, s.httpClient, models.SourceStormglass, "/weather/point?"+params.Encode(), &weather)
	})
	g.Go(func() error {
		tideErr = getJSON(gctx, s.httpClient, models.SourceStormglass, "/tide/sea-level/point?"+tideWindow.Encode(), &seaLevel)
		return nil
	})
	g.Go(func() error {
		extErr = getJSON(gctx, s.httpClient, models.SourceStormglass, "/tide/extremes/point?"+tideWindow.Encode(), &extremes)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(weather.Hours) == 0 {
		return nil, NewProviderError(models.SourceStormglass, "response has no hourly data", nil)
	}
	h := weather.Hours[0]

	conditions := &models.MarineConditions{
		Location: models.Location{Name: locationName, Lat: lat, Lon: lon},
		Waves: models.Waves{
			SignificantHeight:     h.WaveHeight.value(DefaultSignificantHeight),
			PrimarySwellHeight:    h.SwellHeight.value(DefaultPrimarySwellHeight),
			PrimarySwellPeriod:    h.SwellPeriod.value(DefaultPrimarySwellPeriod),
			PrimarySwellDirection: h.SwellDirection.value(DefaultPrimarySwellDirection),
			WindWaveHeight:        h.WindWaveHeight.value(DefaultWindWaveHeight),
			WindWavePeriod:        h.WindWavePeriod.value(DefaultWindWavePeriod),
			WindWaveDirection:     h.WindWaveDirection.value(DefaultWindWaveDirection),
		},
		Wind: models.Wind{
			Speed:     h.WindSpeed.value(DefaultWindSpeed),
			Direction: h.WindDirection.value(DefaultWindDirection),
		},
		Weather: models.Weather{
			Temperature: h.AirTemperature.value(DefaultTemperature),
			Pressure:    h.Pressure.value(DefaultPressure),
			Humidity:    h.Humidity.value(DefaultHumidity),
			// Stormglass reports visibility in km.
			Visibility:  visibilityMeters(h.Visibility),
			Description: "Marine conditions",
		},
		DataSource: models.SourceStormglass,
		Timestamp:  timestamp(),
	}
	if h.Gust.present() {
		gust := h.Gust.value(0)
		conditions.Wind.Gusts = &gust
	}

	conditions.Tides = buildTides(seaLevel, extremes, tideErr, extErr)
	return conditions, nil
}

func buildTides(seaLevel sgSeaLevelResponse, extremes sgExtremesResponse, seaLevelErr, extremesErr error) *models.Tides {
	if seaLevelErr != nil {
		log.Warn().Err(seaLevelErr).Msg("Stormglass tide data unavailable")
		return nil
	}
	if len(seaLevel.Data) == 0 || seaLevel.Data[0].SG == nil {
		return nil
	}

	tides := &models.Tides{CurrentHeight: *seaLevel.Data[0].SG}
	if extremesErr != nil {
		log.Warn().Err(extremesErr).Msg("Stormglass tide extremes unavailable")
		return tides
	}
	for _, e := range extremes.Data {
		switch {
		case e.Type == "high" && tides.NextHigh == "":
			tides.NextHigh = e.Time
		case e.Type == "low" && tides.NextLow == "":
			tides.NextLow = e.Time
		}
	}
	return tides
}

func visibilityMeters(v *sgValue) float64 {
	if !v.present() {
		return DefaultVisibility
	}
	return v.value(0) * 1000
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
