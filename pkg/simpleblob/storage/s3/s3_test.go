package s3

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

func TestS3Backend_Configuration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("DefaultRegion", func(t *testing.T) {
		backend, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, backend)
		assert.Equal(t, "us-east-1", backend.(*Backend).config.Region)
	})
}

// TestS3Backend_Integration runs against a real S3-compatible endpoint
// (e.g. MinIO). Set S3_TEST_ENDPOINT and S3_TEST_BUCKET to enable.
func TestS3Backend_Integration(t *testing.T) {
	endpoint := os.Getenv("S3_TEST_ENDPOINT")
	bucket := os.Getenv("S3_TEST_BUCKET")
	if endpoint == "" || bucket == "" {
		t.Skip("S3_TEST_ENDPOINT and S3_TEST_BUCKET not set; skipping integration test")
	}

	backend, err := New(Config{
		Bucket:                 bucket,
		Endpoint:               endpoint,
		AccessKeyID:            os.Getenv("S3_TEST_ACCESS_KEY"),
		SecretAccessKey:        os.Getenv("S3_TEST_SECRET_KEY"),
		UsePathStyle:           true,
		CreateBucketIfNotExist: true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	blob, err := simpleblob.New(
		[]simpleblob.BlobPart{simpleblob.TextPart("hello s3")},
		simpleblob.WithType("text/plain"),
	)
	require.NoError(t, err)

	key := "files/it/integration_test.txt"
	require.NoError(t, backend.Save(ctx, key, blob))
	defer backend.Delete(ctx, key)

	loaded, err := backend.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "hello s3", loaded.Text())

	meta, err := backend.Meta(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(8), meta.Size)
	assert.Equal(t, "text/plain", meta.ContentType)
}
