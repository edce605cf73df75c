package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
)

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, query string) (*models.Location, error)
	calls     int
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (*models.Location, error) {
	m.calls++
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, query)
	}
	return &models.Location{Name: query, Lat: 34.03, Lon: -118.78, Country: "US"}, nil
}

type mockStore struct {
	records map[string]*models.GeocodeRecord
	getErr  error
	saved   []string
}

func (m *mockStore) Get(ctx context.Context, query string) (*models.GeocodeRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.records[query], nil
}

func (m *mockStore) Save(ctx context.Context, query string, loc models.Location) error {
	m.saved = append(m.saved, query)
	return nil
}

func testCacheConfig() *config.CacheConfig {
	return &config.CacheConfig{
		GeocodeLRUSize:       10,
		GeocodeLRUTTLMinutes: 60,
		EnableLRUCache:       true,
	}
}

func TestCachedGeocoder_LRUHit(t *testing.T) {
	upstream := &mockGeocoder{}
	metrics := observability.NewMetricsForTesting()

	g, err := NewCachedGeocoder(upstream, testCacheConfig(), WithMetrics(metrics))
	require.NoError(t, err)

	first, err := g.Geocode(context.Background(), "Malibu")
	require.NoError(t, err)
	second, err := g.Geocode(context.Background(), "  malibu ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("lru", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("lru", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues("success")))
}

func TestCachedGeocoder_LRUExpiry(t *testing.T) {
	upstream := &mockGeocoder{}
	clock := clockwork.NewFakeClock()

	g, err := NewCachedGeocoder(upstream, testCacheConfig(), WithClock(clock))
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Malibu")
	require.NoError(t, err)
	clock.Advance(61 * time.Minute)
	_, err = g.Geocode(context.Background(), "Malibu")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.calls)
}

func TestCachedGeocoder_StoreTier(t *testing.T) {
	upstream := &mockGeocoder{}
	store := &mockStore{records: map[string]*models.GeocodeRecord{
		"bondi": {Query: "bondi", Name: "Bondi", Lat: -33.89, Lon: 151.27, Country: "AU"},
	}}

	g, err := NewCachedGeocoder(upstream, testCacheConfig(), WithStore(store))
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Bondi")
	require.NoError(t, err)
	assert.Equal(t, "AU", got.Country)
	assert.Equal(t, 0, upstream.calls)
	assert.Empty(t, store.saved)

	_, err = g.Geocode(context.Background(), "Malibu")
	require.NoError(t, err)
	assert.Equal(t, []string{"malibu"}, store.saved)
}

func TestCachedGeocoder_StoreErrorIsAMiss(t *testing.T) {
	upstream := &mockGeocoder{}
	store := &mockStore{getErr: errors.New("throttled")}

	g, err := NewCachedGeocoder(upstream, testCacheConfig(), WithStore(store))
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Malibu")
	require.NoError(t, err)
	assert.Equal(t, 34.03, got.Lat)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedGeocoder_NotFoundIsNotCached(t *testing.T) {
	upstream := &mockGeocoder{
		geocodeFn: func(ctx context.Context, query string) (*models.Location, error) {
			return nil, ErrLocationNotFound
		},
	}
	metrics := observability.NewMetricsForTesting()

	g, err := NewCachedGeocoder(upstream, testCacheConfig(), WithMetrics(metrics))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = g.Geocode(context.Background(), "Atlantis")
		assert.True(t, errors.Is(err, ErrLocationNotFound))
	}
	assert.Equal(t, 2, upstream.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues("not_found")))
}

func TestCachedGeocoder_LRUDisabled(t *testing.T) {
	cfg := testCacheConfig()
	cfg.EnableLRUCache = false
	cfg.GeocodeLRUSize = 0
	upstream := &mockGeocoder{}

	g, err := NewCachedGeocoder(upstream, cfg)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = g.Geocode(context.Background(), "Malibu")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, upstream.calls)
}

func TestNewCachedGeocoder_InvalidSize(t *testing.T) {
	cfg := testCacheConfig()
	cfg.GeocodeLRUSize = 0

	g, err := NewCachedGeocoder(&mockGeocoder{}, cfg)
	assert.Error(t, err)
	assert.Nil(t, g)
}
