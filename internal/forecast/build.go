package forecast

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/cache"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/geocode"
	"github.com/surfhub/swellcast/backend-go/internal/marine"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/internal/narrative"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
	"github.com/surfhub/swellcast/backend-go/internal/spot"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

// Build wires a Service from configuration. metrics may be nil.
func Build(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig, metrics *observability.Metrics) (*Service, error) {
	creds := cfg.Credentials

	openWeather := client.New(client.Options{
		BaseURL: cfg.OpenWeatherBaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	geocoder, err := buildGeocoder(ctx, openWeather, creds.OpenWeatherKey, cacheCfg, metrics)
	if err != nil {
		return nil, err
	}

	selector := marine.NewSelector(marine.Sources{
		NOAA: marine.NewNOAASource(marine.NewNOAAClient(cfg.NOAABaseURL, cfg.HTTPTimeout)),
		Stormglass: marine.NewStormglassSource(
			marine.NewStormglassClient(cfg.StormglassBaseURL, creds.StormglassKey, cfg.HTTPTimeout),
			creds.StormglassKey,
		),
		WorldWeather: marine.NewWorldWeatherSource(
			client.New(client.Options{BaseURL: cfg.WorldWeatherBaseURL, Timeout: cfg.HTTPTimeout}),
			creds.WorldWeatherKey,
		),
		OpenWeather: marine.NewOpenWeatherSource(openWeather, creds.OpenWeatherKey),
	}, creds,
		marine.WithTimeout(cfg.ProviderTimeout),
		marine.WithMetrics(metrics),
	)

	narrator := narrative.NewGeminiClient(
		client.New(client.Options{BaseURL: cfg.GeminiBaseURL, Timeout: cfg.HTTPTimeout}),
		creds.GeminiKey,
		narrative.WithModel(cfg.GeminiModel),
		narrative.WithRetry(cfg.MaxRetries, cfg.RetryDelay),
		narrative.WithMetrics(metrics),
	)

	spots := spot.NewResolver(loadCatalog(ctx, cfg.SpotCatalogBucket)...)
	log.Info().Int("spots", spots.Len()).Msg("Spot registry ready")

	return NewService(Dependencies{
		Geocoder: geocoder,
		Marine:   selector,
		Weather:  selector.WeatherOnly(),
		Spots:    spots,
		Narrator: narrator,
	}, creds, WithMetrics(metrics)), nil
}

func buildGeocoder(ctx context.Context, httpClient client.Interface, apiKey string, cacheCfg *config.CacheConfig, metrics *observability.Metrics) (models.Geocoder, error) {
	opts := []geocode.Option{geocode.WithMetrics(metrics)}

	if cacheCfg.EnableDynamoCache {
		dynamoClient, err := cache.NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating geocode store: %w", err)
		}
		opts = append(opts, geocode.WithStore(cache.NewDynamoGeocodeCache(dynamoClient, cacheCfg, nil)))
	}

	cached, err := geocode.NewCachedGeocoder(geocode.NewOpenWeatherGeocoder(httpClient, apiKey), cacheCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating geocoder: %w", err)
	}
	return geocode.NewKnownSpotGeocoder(cached), nil
}

// loadCatalog returns the extra spots stored in bucket. Failures leave the
// built-in registry in place.
func loadCatalog(ctx context.Context, bucket string) []models.SpotConfiguration {
	if bucket == "" {
		return nil
	}

	s3Client, err := spot.NewS3Client(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Spot catalog disabled")
		return nil
	}

	spots, err := spot.NewS3Catalog(s3Client, bucket).Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("Failed to load spot catalog")
		return nil
	}

	log.Info().Int("spots", len(spots)).Str("bucket", bucket).Msg("Loaded spot catalog")
	return spots
}
