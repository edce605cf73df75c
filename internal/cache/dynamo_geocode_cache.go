package cache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// DynamoGeocodeCache persists geocoding results across Lambda cold starts.
// Only coordinates are stored; marine data is never cached.
type DynamoGeocodeCache struct {
	client DynamoDBClient
	config *config.CacheConfig
	clock  clockwork.Clock
}

func NewDynamoGeocodeCache(client DynamoDBClient, cacheConfig *config.CacheConfig, clock clockwork.Clock) *DynamoGeocodeCache {
	if cacheConfig == nil {
		cacheConfig = config.GetCacheConfig()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DynamoGeocodeCache{
		client: client,
		config: cacheConfig,
		clock:  clock,
	}
}

// Get returns the cached location for query, or nil when absent or expired.
func (c *DynamoGeocodeCache) Get(ctx context.Context, query string) (*models.GeocodeRecord, error) {
	key := models.NormalizeQuery(query)

	result, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.config.GeocodeTableName),
		Key: map[string]types.AttributeValue{
			"query": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting geocode from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var record models.GeocodeRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling geocode record: %w", err)
	}

	// DynamoDB TTL deletion lags by up to a couple of days.
	if c.clock.Now().Unix() >= record.TTL {
		log.Debug().Str("query", key).Msg("Geocode cache entry expired")
		return nil, nil
	}
	return &record, nil
}

// Save stores loc under the normalized query.
func (c *DynamoGeocodeCache) Save(ctx context.Context, query string, loc models.Location) error {
	now := c.clock.Now().Unix()
	record := models.GeocodeRecord{
		Query:       models.NormalizeQuery(query),
		Name:        loc.Name,
		Lat:         loc.Lat,
		Lon:         loc.Lon,
		Country:     loc.Country,
		LastUpdated: now,
		TTL:         now + int64(c.config.GetGeocodeDynamoTTL().Seconds()),
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid geocode record: %w", err)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling geocode record: %w", err)
	}

	if _, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.config.GeocodeTableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("putting geocode in DynamoDB: %w", err)
	}

	log.Debug().Str("query", record.Query).Msg("Saved geocode to cache")
	return nil
}
