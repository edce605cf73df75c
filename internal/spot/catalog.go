package spot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

const catalogKey = "spots.json"

// catalogFile is the JSON document stored in the catalog bucket.
type catalogFile struct {
	Spots []models.SpotConfiguration `json:"spots"`
}

// S3Catalog reads additional spot definitions from S3.
type S3Catalog struct {
	client     S3Client
	bucketName string
}

func NewS3Catalog(client S3Client, bucketName string) *S3Catalog {
	return &S3Catalog{client: client, bucketName: bucketName}
}

// NewS3Client creates an S3 client from the default AWS configuration chain.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Load returns the valid spots in the catalog. A missing object yields an
// empty list; invalid entries are skipped.
func (c *S3Catalog) Load(ctx context.Context) ([]models.SpotConfiguration, error) {
	if c.bucketName == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(catalogKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			log.Info().Str("bucket", c.bucketName).Msg("No spot catalog found")
			return nil, nil
		}
		return nil, fmt.Errorf("getting spot catalog: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	var file catalogFile
	if err := json.NewDecoder(result.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding spot catalog: %w", err)
	}

	spots := make([]models.SpotConfiguration, 0, len(file.Spots))
	for i, s := range file.Spots {
		if err := s.Validate(); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Skipping invalid catalog spot")
			continue
		}
		spots = append(spots, s)
	}

	log.Debug().Int("spot_count", len(spots)).Msg("Loaded spot catalog from S3")
	return spots, nil
}
