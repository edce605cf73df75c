package marine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

const sgWeatherBody = `{"hours":[{
	"time":"2024-06-01T12:00:00+00:00",
	"waveHeight":{"noaa":1.8,"sg":2.0},
	"swellHeight":{"sg":1.4},
	"swellPeriod":{"sg":12},
	"swellDirection":{"noaa":250},
	"windWaveHeight":{"sg":0.2},
	"windSpeed":{"noaa":0},
	"windDirection":{"sg":45},
	"gust":{"sg":4.5},
	"airTemperature":{"sg":17.5},
	"visibility":{"sg":20}
}]}`

func stormglassServer(t *testing.T, tideStatus int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/weather/point":
			assert.Equal(t, "-33.8900", r.URL.Query().Get("lat"))
			assert.Contains(t, r.URL.Query().Get("params"), "swellPeriod")
			fmt.Fprint(w, sgWeatherBody)
		case "/tide/sea-level/point":
			if tideStatus != http.StatusOK {
				w.WriteHeader(tideStatus)
				return
			}
			fmt.Fprint(w, `{"data":[{"sg":0.62,"time":"2024-06-01T12:00:00+00:00"}]}`)
		case "/tide/extremes/point":
			if tideStatus != http.StatusOK {
				w.WriteHeader(tideStatus)
				return
			}
			fmt.Fprint(w, `{"data":[
				{"height":-0.4,"time":"2024-06-01T15:10:00+00:00","type":"low"},
				{"height":0.9,"time":"2024-06-01T21:30:00+00:00","type":"high"},
				{"height":-0.3,"time":"2024-06-02T03:40:00+00:00","type":"low"}
			]}`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestStormglassSource_Fetch(t *testing.T) {
	srv := stormglassServer(t, http.StatusOK)
	defer srv.Close()

	source := NewStormglassSource(NewStormglassClient(srv.URL, "test-key", 5*time.Second), "test-key")
	got, err := source.Fetch(context.Background(), -33.89, 151.27, "Bondi")
	require.NoError(t, err)

	assert.Equal(t, models.SourceStormglass, got.DataSource)
	assert.Equal(t, 1.8, got.Waves.SignificantHeight)
	assert.Equal(t, 1.4, got.Waves.PrimarySwellHeight)
	assert.Equal(t, 12.0, got.Waves.PrimarySwellPeriod)
	assert.Equal(t, 250.0, got.Waves.PrimarySwellDirection)
	assert.Equal(t, 0.2, got.Waves.WindWaveHeight)
	assert.Equal(t, DefaultWindWavePeriod, got.Waves.WindWavePeriod)
	assert.Equal(t, 0.0, got.Wind.Speed, "zero wind is a reading, not a gap")
	assert.Equal(t, 45.0, got.Wind.Direction)
	require.NotNil(t, got.Wind.Gusts)
	assert.Equal(t, 4.5, *got.Wind.Gusts)
	assert.Equal(t, 17.5, got.Weather.Temperature)
	assert.Equal(t, DefaultPressure, got.Weather.Pressure)
	assert.Equal(t, 20000.0, got.Weather.Visibility)

	require.NotNil(t, got.Tides)
	assert.Equal(t, 0.62, got.Tides.CurrentHeight)
	assert.Equal(t, "2024-06-01T21:30:00+00:00", got.Tides.NextHigh)
	assert.Equal(t, "2024-06-01T15:10:00+00:00", got.Tides.NextLow)
}

func TestStormglassSource_TideFailureIsNotFatal(t *testing.T) {
	srv := stormglassServer(t, http.StatusPaymentRequired)
	defer srv.Close()

	source := NewStormglassSource(NewStormglassClient(srv.URL, "test-key", 5*time.Second), "test-key")
	got, err := source.Fetch(context.Background(), -33.89, 151.27, "Bondi")
	require.NoError(t, err)
	assert.Nil(t, got.Tides)
	assert.Equal(t, 1.8, got.Waves.SignificantHeight)
}

func TestStormglassSource_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		source := NewStormglassSource(NewStormglassClient("http://unused", "", time.Second), "")
		_, err := source.Fetch(context.Background(), 0, 0, "Nowhere")
		assert.True(t, IsProviderError(err))
	})

	t.Run("quota exceeded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		source := NewStormglassSource(NewStormglassClient(srv.URL, "k", 5*time.Second), "k")
		_, err := source.Fetch(context.Background(), 0, 0, "Nowhere")

		var pe *ProviderError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	})

	t.Run("no hours", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"hours":[],"data":[]}`)
		}))
		defer srv.Close()

		source := NewStormglassSource(NewStormglassClient(srv.URL, "k", 5*time.Second), "k")
		_, err := source.Fetch(context.Background(), 0, 0, "Nowhere")
		assert.True(t, IsProviderError(err))
	})
}
