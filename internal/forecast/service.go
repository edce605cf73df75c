// Package forecast sequences geocoding, marine data, scoring and narrative
// into a single forecast response.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/geocode"
	"github.com/surfhub/swellcast/backend-go/internal/marine"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/internal/narrative"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
	"github.com/surfhub/swellcast/backend-go/internal/surf"
)

// ErrInvalidInput is returned for a missing or too-short location.
var ErrInvalidInput = errors.New("invalid input")

const minLocationLength = 2

// Dependencies are the collaborators a Service orchestrates.
type Dependencies struct {
	Geocoder models.Geocoder
	// Marine walks the full provider chain.
	Marine models.MarineFetcher
	// Weather is the weather-only estimate used by enhanced and basic.
	Weather  models.MarineFetcher
	Spots    models.SpotResolver
	Narrator models.NarrativeGenerator
}

type Service struct {
	deps    Dependencies
	creds   config.Credentials
	metrics *observability.Metrics
}

type Option func(*Service)

func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(deps Dependencies, creds config.Credentials, opts ...Option) *Service {
	s := &Service{deps: deps, creds: creds}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetForecast builds a forecast for req. Only ErrInvalidInput and
// geocode.ErrLocationNotFound are returned as errors; every other failure
// degrades the response instead.
func (s *Service) GetForecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResponse, error) {
	location := strings.TrimSpace(req.Location)
	if utf8.RuneCountInString(location) < minLocationLength {
		return nil, fmt.Errorf("%w: location must be at least %d characters", ErrInvalidInput, minLocationLength)
	}

	p := choosePlan(models.ParseForecastType(string(req.PreferredForecastType)), s.creds)
	log.Info().
		Str("location", location).
		Str("forecast_type", string(p.forecastType)).
		Str("quality", p.quality).
		Msg("Building forecast")

	var (
		resp *models.ForecastResponse
		err  error
	)
	if p.forecastType == models.ForecastBasic {
		resp, err = s.basic(ctx, location, p)
	} else {
		resp, err = s.scored(ctx, location, p)
	}
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		source := "none"
		if resp.MarineData != nil {
			source = string(resp.MarineData.DataSource)
		}
		s.metrics.Forecasts.WithLabelValues(string(resp.ForecastType), source).Inc()
	}
	return resp, nil
}

// scored serves the marine and enhanced plans: real or estimated marine
// data scored against the resolved spot.
func (s *Service) scored(ctx context.Context, location string, p plan) (*models.ForecastResponse, error) {
	loc, err := s.deps.Geocoder.Geocode(ctx, location)
	if err != nil {
		if errors.Is(err, geocode.ErrLocationNotFound) {
			return nil, err
		}
		log.Error().Err(err).Str("location", location).Msg("Geocoding failed")
		return FallbackResponse(location), nil
	}

	spot := s.deps.Spots.Resolve(location, loc.Country)

	fetcher := s.deps.Weather
	if p.forecastType == models.ForecastMarine {
		fetcher = s.deps.Marine
	}
	conditions, degraded := s.fetchConditions(ctx, fetcher, *loc, location)

	sc := conditions.ToSurfConditions()
	sc.Location = location
	quality := surf.CalculateOverallScore(sc, spot)

	text, aiErr := s.deps.Narrator.Generate(ctx, narrative.BuildPrompt(location, conditions, spot, quality))
	if aiErr != nil {
		log.Warn().Err(aiErr).Str("location", location).Msg("Narrative unavailable, using template")
		text = narrative.FallbackSummary(location, conditions, quality)
	}

	return &models.ForecastResponse{
		Location:         location,
		Conditions:       text,
		Recommendation:   quality.Description,
		WindConditions:   narrative.WindSummary(conditions.Wind, quality.Breakdown.Wind),
		WeatherSummary:   narrative.WeatherSummary(conditions.Weather),
		SurfabilityScore: quality.OverallScore,
		SurfQuality:      &quality,
		MarineData: &models.MarineData{
			WaveHeight:            conditions.Waves.SignificantHeight,
			PrimarySwellHeight:    conditions.Waves.PrimarySwellHeight,
			PrimarySwellPeriod:    conditions.Waves.PrimarySwellPeriod,
			PrimarySwellDirection: conditions.Waves.PrimarySwellDirection,
			WindSpeed:             conditions.Wind.Speed,
			WindDirection:         conditions.Wind.Direction,
			DataSource:            conditions.DataSource,
		},
		SpotInfo: &models.SpotInfo{
			Name:              spot.Name,
			Type:              spot.Type,
			Difficulty:        spot.Difficulty,
			OptimalConditions: spot.OptimalConditions(),
		},
		ForecastType: p.forecastType,
		DataQuality:  dataQuality(p.quality, degraded, aiErr != nil),
		APICostsUsed: p.forecastType == models.ForecastMarine && s.creds.HasGlobalMarine(),
	}, nil
}

// basic serves the weather-only plan. Without the weather key it skips
// geocoding and works from the conservative defaults.
func (s *Service) basic(ctx context.Context, location string, p plan) (*models.ForecastResponse, error) {
	var (
		conditions *models.MarineConditions
		degraded   bool
		country    string
	)
	if s.creds.HasBaseline() {
		loc, err := s.deps.Geocoder.Geocode(ctx, location)
		if err != nil {
			if errors.Is(err, geocode.ErrLocationNotFound) {
				return nil, err
			}
			log.Error().Err(err).Str("location", location).Msg("Geocoding failed")
			return FallbackResponse(location), nil
		}
		country = loc.Country
		conditions, degraded = s.fetchConditions(ctx, s.deps.Weather, *loc, location)
	} else {
		conditions = marine.UnavailableConditions(models.Location{Name: location})
		degraded = true
	}

	sc := conditions.ToSurfConditions()
	sc.Location = location
	scored := surf.CalculateOverallScore(sc, s.deps.Spots.Resolve(location, country))

	text, aiErr := s.deps.Narrator.Generate(ctx, narrative.BuildBasicPrompt(location, conditions))
	if aiErr != nil {
		log.Warn().Err(aiErr).Str("location", location).Msg("Narrative unavailable, using template")
		text = narrative.BasicFallbackSummary(location, conditions)
	}

	return &models.ForecastResponse{
		Location:         location,
		Conditions:       text,
		Recommendation:   scored.Description,
		WindConditions:   narrative.WindSummary(conditions.Wind, scored.Breakdown.Wind),
		WeatherSummary:   narrative.WeatherSummary(conditions.Weather),
		SurfabilityScore: scored.OverallScore,
		SurfQuality: &models.SurfQuality{
			OverallScore: scored.OverallScore,
			Rating:       surf.CoarseRating(scored.OverallScore),
			Breakdown:    models.ScoreBreakdown{WaveHeight: 0.5, WavePeriod: 0.5, Wind: 0.5, SwellDirection: 0.5},
			Description:  scored.Description,
		},
		ForecastType: p.forecastType,
		DataQuality:  dataQuality(p.quality, degraded, aiErr != nil),
	}, nil
}

// fetchConditions never fails: when every source is down it substitutes
// the conservative defaults and reports the response as degraded.
func (s *Service) fetchConditions(ctx context.Context, fetcher models.MarineFetcher, loc models.Location, location string) (*models.MarineConditions, bool) {
	conditions, err := fetcher.Fetch(ctx, loc.Lat, loc.Lon, location)
	if err == nil {
		return conditions, false
	}
	log.Warn().Err(err).Str("location", location).Msg("Marine data unavailable, using conservative defaults")
	loc.Name = location
	return marine.UnavailableConditions(loc), true
}

func dataQuality(base string, marineDown, aiDown bool) string {
	switch {
	case marineDown:
		return qualityMarineDown
	case aiDown:
		return base + aiDownSuffix
	default:
		return base
	}
}

// FallbackResponse is returned when a forecast could not be assembled at
// all.
func FallbackResponse(location string) *models.ForecastResponse {
	return &models.ForecastResponse{
		Location:         location,
		Conditions:       fmt.Sprintf("Unable to generate forecast for %s. Please try again.", location),
		Recommendation:   "Forecast unavailable - please check location and try again.",
		WindConditions:   "Data unavailable",
		WeatherSummary:   "Data unavailable",
		SurfabilityScore: 5,
		ForecastType:     models.ForecastFallback,
		DataQuality:      QualityUnavailable,
	}
}
