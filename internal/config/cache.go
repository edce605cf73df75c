package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU cache settings
	GeocodeLRUSize       int
	GeocodeLRUTTLMinutes int

	// DynamoDB cache settings
	GeocodeDynamoTTLDays int
	GeocodeTableName     string

	EnableLRUCache    bool
	EnableDynamoCache bool
}

const (
	defaultGeocodeLRUSize       = 1000
	defaultGeocodeLRUTTLMinutes = 24 * 60
	defaultGeocodeDynamoTTLDays = 30
	defaultGeocodeTableName     = "geocode-cache"
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		GeocodeLRUSize:       getEnvInt("CACHE_GEOCODE_LRU_SIZE", defaultGeocodeLRUSize),
		GeocodeLRUTTLMinutes: getEnvInt("CACHE_GEOCODE_LRU_TTL_MINUTES", defaultGeocodeLRUTTLMinutes),
		GeocodeDynamoTTLDays: getEnvInt("CACHE_GEOCODE_DYNAMO_TTL_DAYS", defaultGeocodeDynamoTTLDays),
		GeocodeTableName:     getEnvOrDefault("CACHE_GEOCODE_TABLE", defaultGeocodeTableName),
		EnableLRUCache:       getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache:    getEnvBool("CACHE_ENABLE_DYNAMO", false),
	}

	log.Debug().
		Int("GeocodeLRUSize", config.GeocodeLRUSize).
		Int("GeocodeLRUTTLMinutes", config.GeocodeLRUTTLMinutes).
		Int("GeocodeDynamoTTLDays", config.GeocodeDynamoTTLDays).
		Str("GeocodeTableName", config.GeocodeTableName).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetGeocodeLRUTTL() time.Duration {
	return time.Duration(c.GeocodeLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetGeocodeDynamoTTL() time.Duration {
	return time.Duration(c.GeocodeDynamoTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
