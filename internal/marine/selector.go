package marine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
)

// CoverageBox is an inclusive lat/lon rectangle.
type CoverageBox struct {
	Name   string
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

func (b CoverageBox) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

func (b CoverageBox) String() string {
	return fmt.Sprintf("%s [%g..%g, %g..%g]", b.Name, b.LatMin, b.LatMax, b.LonMin, b.LonMax)
}

// NOAACoverage lists the areas where NOAA is preferred over paid providers.
var NOAACoverage = []CoverageBox{
	{Name: "Continental US", LatMin: 24, LatMax: 50, LonMin: -125, LonMax: -66},
	{Name: "Alaska", LatMin: 54, LatMax: 72, LonMin: -180, LonMax: -129},
	{Name: "Hawaii", LatMin: 18, LatMax: 23, LonMin: -161, LonMax: -154},
	{Name: "Puerto Rico", LatMin: 17, LatMax: 19, LonMin: -68, LonMax: -65},
	{Name: "Pacific Territories", LatMin: -15, LatMax: 25, LonMin: 140, LonMax: 180},
}

// InNOAACoverage returns the first coverage box containing the point.
func InNOAACoverage(lat, lon float64) (CoverageBox, bool) {
	for _, box := range NOAACoverage {
		if box.Contains(lat, lon) {
			return box, true
		}
	}
	return CoverageBox{}, false
}

// Sources groups the concrete adapters a Selector may order.
type Sources struct {
	NOAA         Source
	Stormglass   Source
	WorldWeather Source
	OpenWeather  Source
}

// Selector orders marine sources by coverage and credentials, then walks
// them until one answers.
type Selector struct {
	sources Sources
	creds   config.Credentials
	timeout time.Duration
	metrics *observability.Metrics
}

type SelectorOption func(*Selector)

// WithTimeout bounds every individual adapter call.
func WithTimeout(d time.Duration) SelectorOption {
	return func(s *Selector) {
		s.timeout = d
	}
}

func WithMetrics(m *observability.Metrics) SelectorOption {
	return func(s *Selector) {
		s.metrics = m
	}
}

func NewSelector(sources Sources, creds config.Credentials, opts ...SelectorOption) *Selector {
	s := &Selector{
		sources: sources,
		creds:   creds,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the adapters to try for a point, best first. The weather
// only adapter is always last.
func (s *Selector) Select(lat, lon float64) []Source {
	var ordered []Source
	if box, ok := InNOAACoverage(lat, lon); ok && s.sources.NOAA != nil {
		log.Debug().Stringer("coverage", box).Msg("Point inside NOAA coverage")
		ordered = append(ordered, s.sources.NOAA)
	}
	if s.creds.StormglassKey != "" && s.sources.Stormglass != nil {
		ordered = append(ordered, s.sources.Stormglass)
	}
	if s.creds.WorldWeatherKey != "" && s.sources.WorldWeather != nil {
		ordered = append(ordered, s.sources.WorldWeather)
	}
	if s.sources.OpenWeather != nil {
		ordered = append(ordered, s.sources.OpenWeather)
	}
	return ordered
}

// Fetch tries each selected source in order and returns the first valid
// answer. When all fail the error wraps ErrMarineDataUnavailable together
// with every provider failure.
func (s *Selector) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	return s.try(ctx, s.Select(lat, lon), lat, lon, locationName)
}

// WeatherOnly skips the marine providers and goes straight to the
// weather-only adapter.
func (s *Selector) WeatherOnly() models.MarineFetcher {
	return weatherOnly{s}
}

type weatherOnly struct {
	s *Selector
}

func (w weatherOnly) Fetch(ctx context.Context, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	var sources []Source
	if w.s.sources.OpenWeather != nil {
		sources = append(sources, w.s.sources.OpenWeather)
	}
	return w.s.try(ctx, sources, lat, lon, locationName)
}

func (s *Selector) try(ctx context.Context, sources []Source, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	errs := []error{ErrMarineDataUnavailable}
	for _, src := range sources {
		conditions, err := s.fetchOne(ctx, src, lat, lon, locationName)
		if err == nil {
			log.Debug().
				Str("source", string(src.Name())).
				Str("location", locationName).
				Msg("Marine data fetched")
			return conditions, nil
		}
		log.Warn().
			Err(err).
			Str("source", string(src.Name())).
			Str("location", locationName).
			Msg("Marine provider failed, trying next")
		errs = append(errs, err)

		if ctx.Err() != nil {
			break
		}
	}

	if s.metrics != nil {
		s.metrics.MarineFallbacks.Inc()
	}
	return nil, errors.Join(errs...)
}

func (s *Selector) fetchOne(ctx context.Context, src Source, lat, lon float64, locationName string) (*models.MarineConditions, error) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	conditions, err := src.Fetch(callCtx, lat, lon, locationName)
	if err == nil && conditions == nil {
		err = NewProviderError(src.Name(), "empty response", nil)
	}
	if err == nil {
		if verr := conditions.Validate(); verr != nil {
			err = NewProviderError(src.Name(), "invalid payload", verr)
		}
	} else if !IsProviderError(err) {
		err = NewProviderError(src.Name(), "request failed", err)
	}
	if err == nil && conditions.Location.Name == "" {
		conditions.Location.Name = locationName
	}

	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.metrics.ProviderRequests.WithLabelValues(string(src.Name()), outcome).Inc()
		s.metrics.ProviderDuration.WithLabelValues(string(src.Name())).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	return conditions, nil
}
