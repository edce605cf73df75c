package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMarine() *MarineConditions {
	return &MarineConditions{
		Location: Location{Name: "Malibu", Lat: 34.03, Lon: -118.68, Country: "US"},
		Waves: Waves{
			SignificantHeight:     2.0,
			PrimarySwellHeight:    1.6,
			PrimarySwellPeriod:    9,
			PrimarySwellDirection: 200,
			WindWaveHeight:        0.3,
			WindWavePeriod:        4,
			WindWaveDirection:     270,
		},
		Wind:       Wind{Speed: 3.5, Direction: 45},
		Weather:    Weather{Temperature: 18, Pressure: 1015, Humidity: 60, Visibility: 10000, Description: "Sunny"},
		DataSource: SourceNOAA,
		Timestamp:  "2024-06-01T12:00:00Z",
	}
}

func TestToSurfConditions(t *testing.T) {
	t.Parallel()

	m := sampleMarine()
	sc := m.ToSurfConditions()

	assert.Equal(t, 2.0, sc.WaveHeight)
	assert.Equal(t, 9.0, sc.WavePeriod)
	assert.Equal(t, 200.0, sc.SwellDirection)
	assert.Equal(t, 3.5, sc.WindSpeed)
	assert.Equal(t, 45.0, sc.WindDirection)
	assert.Equal(t, "Malibu", sc.Location)
	assert.Nil(t, sc.TideHeight)
}

func TestToSurfConditionsCarriesTide(t *testing.T) {
	t.Parallel()

	m := sampleMarine()
	m.Tides = &Tides{CurrentHeight: 0.8}

	sc := m.ToSurfConditions()
	require.NotNil(t, sc.TideHeight)
	assert.Equal(t, 0.8, *sc.TideHeight)

	m.Tides.CurrentHeight = 1.2
	assert.Equal(t, 0.8, *sc.TideHeight, "projection must not alias the source")
}

func TestMarineConditionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(m *MarineConditions)
		wantErr string
	}{
		{name: "valid", mutate: func(m *MarineConditions) {}},
		{name: "NaN wave height", mutate: func(m *MarineConditions) { m.Waves.SignificantHeight = math.NaN() }, wantErr: "significant height"},
		{name: "infinite wind", mutate: func(m *MarineConditions) { m.Wind.Speed = math.Inf(1) }, wantErr: "wind speed"},
		{name: "missing source", mutate: func(m *MarineConditions) { m.DataSource = "" }, wantErr: "data source"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := sampleMarine()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
