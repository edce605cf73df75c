package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
)

// Store is a persistent second tier behind the in-memory cache.
type Store interface {
	Get(ctx context.Context, query string) (*models.GeocodeRecord, error)
	Save(ctx context.Context, query string, loc models.Location) error
}

type lruEntry struct {
	location  models.Location
	expiresAt time.Time
}

// CachedGeocoder wraps a Geocoder with an LRU tier and an optional Store.
// Store failures degrade to a miss; they never fail the lookup.
type CachedGeocoder struct {
	next    models.Geocoder
	lru     *lru.Cache[string, *lruEntry]
	ttl     time.Duration
	store   Store
	metrics *observability.Metrics
	clock   clockwork.Clock
}

type Option func(*CachedGeocoder)

func WithStore(store Store) Option {
	return func(g *CachedGeocoder) {
		g.store = store
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(g *CachedGeocoder) {
		g.metrics = m
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(g *CachedGeocoder) {
		g.clock = clock
	}
}

func NewCachedGeocoder(next models.Geocoder, cfg *config.CacheConfig, opts ...Option) (*CachedGeocoder, error) {
	g := &CachedGeocoder{
		next:  next,
		ttl:   cfg.GetGeocodeLRUTTL(),
		clock: clockwork.NewRealClock(),
	}
	if cfg.EnableLRUCache {
		cache, err := lru.New[string, *lruEntry](cfg.GeocodeLRUSize)
		if err != nil {
			return nil, fmt.Errorf("creating LRU cache: %w", err)
		}
		g.lru = cache
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *CachedGeocoder) Geocode(ctx context.Context, query string) (*models.Location, error) {
	key := models.NormalizeQuery(query)

	if loc, ok := g.fromLRU(key); ok {
		return loc, nil
	}
	if loc, ok := g.fromStore(ctx, key); ok {
		g.remember(key, *loc)
		return loc, nil
	}

	loc, err := g.next.Geocode(ctx, query)
	if err != nil {
		g.countRequest(err)
		return nil, err
	}
	g.countRequest(nil)

	g.remember(key, *loc)
	if g.store != nil {
		if err := g.store.Save(ctx, key, *loc); err != nil {
			log.Warn().Err(err).Str("query", key).Msg("Failed to persist geocode result")
		}
	}
	return loc, nil
}

func (g *CachedGeocoder) fromLRU(key string) (*models.Location, bool) {
	if g.lru == nil {
		return nil, false
	}
	if entry, ok := g.lru.Get(key); ok {
		if g.clock.Now().Before(entry.expiresAt) {
			g.countCache("lru", "hit")
			loc := entry.location
			return &loc, true
		}
		g.lru.Remove(key)
	}
	g.countCache("lru", "miss")
	return nil, false
}

func (g *CachedGeocoder) fromStore(ctx context.Context, key string) (*models.Location, bool) {
	if g.store == nil {
		return nil, false
	}
	record, err := g.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("query", key).Msg("Geocode store lookup failed")
	}
	if err != nil || record == nil {
		g.countCache("dynamo", "miss")
		return nil, false
	}
	g.countCache("dynamo", "hit")
	log.Debug().Str("query", key).Msg("Geocode store hit")
	return record.Location(), true
}

func (g *CachedGeocoder) remember(key string, loc models.Location) {
	if g.lru == nil {
		return
	}
	g.lru.Add(key, &lruEntry{location: loc, expiresAt: g.clock.Now().Add(g.ttl)})
}

func (g *CachedGeocoder) countCache(tier, result string) {
	if g.metrics != nil {
		g.metrics.GeocodeCache.WithLabelValues(tier, result).Inc()
	}
}

func (g *CachedGeocoder) countRequest(err error) {
	if g.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, ErrLocationNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	g.metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
}
