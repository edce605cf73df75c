package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var cacheEnvVars = []string{
	"CACHE_GEOCODE_LRU_SIZE",
	"CACHE_GEOCODE_LRU_TTL_MINUTES",
	"CACHE_GEOCODE_DYNAMO_TTL_DAYS",
	"CACHE_GEOCODE_TABLE",
	"CACHE_ENABLE_LRU",
	"CACHE_ENABLE_DYNAMO",
}

// unsetForTest removes key for the duration of the test and restores it after.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetting %s: %v", key, err)
	}
}

func TestGetCacheConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected CacheConfig
	}{
		{
			name: "Default values",
			envVars: map[string]string{},
			expected: CacheConfig{
				GeocodeLRUSize:       defaultGeocodeLRUSize,
				GeocodeLRUTTLMinutes: defaultGeocodeLRUTTLMinutes,
				GeocodeDynamoTTLDays: defaultGeocodeDynamoTTLDays,
				GeocodeTableName:     defaultGeocodeTableName,
				EnableLRUCache:       true,
				EnableDynamoCache:    false,
			},
		},
		{
			name: "Custom values",
			envVars: map[string]string{
				"CACHE_GEOCODE_LRU_SIZE":        "50",
				"CACHE_GEOCODE_LRU_TTL_MINUTES": "5",
				"CACHE_GEOCODE_DYNAMO_TTL_DAYS": "7",
				"CACHE_GEOCODE_TABLE":           "spots-geo",
				"CACHE_ENABLE_LRU":              "false",
				"CACHE_ENABLE_DYNAMO":           "yes",
			},
			expected: CacheConfig{
				GeocodeLRUSize:       50,
				GeocodeLRUTTLMinutes: 5,
				GeocodeDynamoTTLDays: 7,
				GeocodeTableName:     "spots-geo",
				EnableLRUCache:       false,
				EnableDynamoCache:    true,
			},
		},
		{
			name: "Invalid integer falls back to default",
			envVars: map[string]string{
				"CACHE_GEOCODE_LRU_SIZE": "lots",
			},
			expected: CacheConfig{
				GeocodeLRUSize:       defaultGeocodeLRUSize,
				GeocodeLRUTTLMinutes: defaultGeocodeLRUTTLMinutes,
				GeocodeDynamoTTLDays: defaultGeocodeDynamoTTLDays,
				GeocodeTableName:     defaultGeocodeTableName,
				EnableLRUCache:       true,
				EnableDynamoCache:    false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range cacheEnvVars {
				unsetForTest(t, k)
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			got := GetCacheConfig()
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestCacheConfigDurations(t *testing.T) {
	c := &CacheConfig{GeocodeLRUTTLMinutes: 30, GeocodeDynamoTTLDays: 2}

	assert.Equal(t, 30*time.Minute, c.GetGeocodeLRUTTL())
	assert.Equal(t, 48*time.Hour, c.GetGeocodeDynamoTTL())
}
