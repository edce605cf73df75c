package spot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type mockS3Client struct {
	getObjectFunc func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.getObjectFunc(ctx, params, optFns...)
}

func bodyOf(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(s)))
}

func TestS3CatalogLoad(t *testing.T) {
	t.Parallel()

	const doc = `{
		"spots": [
			{
				"name": "Uluwatu",
				"type": "reef_break",
				"aspect": 225,
				"optimalWaveHeight": {"min": 1.5, "max": 3.5},
				"optimalSwellDirection": {"min": 190, "max": 250},
				"difficulty": "advanced"
			},
			{
				"name": "Broken",
				"type": "wave_pool",
				"aspect": 0,
				"optimalWaveHeight": {"min": 1, "max": 2},
				"optimalSwellDirection": {"min": 0, "max": 90},
				"difficulty": "beginner"
			}
		]
	}`

	client := &mockS3Client{
		getObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "surf-spots", *params.Bucket)
			assert.Equal(t, catalogKey, *params.Key)
			return &s3.GetObjectOutput{Body: bodyOf(doc)}, nil
		},
	}

	spots, err := NewS3Catalog(client, "surf-spots").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "Uluwatu", spots[0].Name)
	assert.Equal(t, models.ReefBreak, spots[0].Type)
	assert.Equal(t, models.Range{Min: 190, Max: 250}, spots[0].OptimalSwellDirection)

	r := NewResolver(spots...)
	assert.Equal(t, models.ReefBreak, r.Resolve("uluwatu bali", "ID").Type)
}

func TestS3CatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bucket    string
		output    *s3.GetObjectOutput
		err       error
		wantErr   bool
		wantSpots int
	}{
		{name: "empty bucket", bucket: "", wantErr: true},
		{name: "missing object", bucket: "b", err: &types.NoSuchKey{}},
		{name: "access denied", bucket: "b", err: errors.New("access denied"), wantErr: true},
		{name: "malformed json", bucket: "b", output: &s3.GetObjectOutput{Body: bodyOf("{not json")}, wantErr: true},
		{name: "empty catalog", bucket: "b", output: &s3.GetObjectOutput{Body: bodyOf(`{"spots":[]}`)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &mockS3Client{
				getObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
					return tt.output, tt.err
				},
			}
			spots, err := NewS3Catalog(client, tt.bucket).Load(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, spots, tt.wantSpots)
		})
	}
}
