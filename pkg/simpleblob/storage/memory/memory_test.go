package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

func TestMemoryBackend_RoundTrip(t *testing.T) {
	backend := New()
	ctx := context.Background()

	blob, err := simpleblob.New(
		[]simpleblob.BlobPart{simpleblob.TextPart("hello memory")},
		simpleblob.WithType("text/plain"),
	)
	require.NoError(t, err)

	require.NoError(t, backend.Save(ctx, "k1", blob))

	loaded, err := backend.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "hello memory", loaded.Text())
	assert.Equal(t, "text/plain", loaded.Type())
	assert.Equal(t, blob.Size(), loaded.Size())
}

func TestMemoryBackend_DefaultMediaType(t *testing.T) {
	backend := New()
	ctx := context.Background()

	blob, err := simpleblob.New([]simpleblob.BlobPart{simpleblob.BytesPart([]byte{0, 1, 2})})
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, "k", blob))

	meta, err := backend.Meta(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", meta.ContentType)
	assert.Equal(t, int64(3), meta.Size)
}

func TestMemoryBackend_NotFound(t *testing.T) {
	backend := New()
	ctx := context.Background()

	_, err := backend.Load(ctx, "missing")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)

	_, err = backend.Meta(ctx, "missing")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)

	err = backend.Delete(ctx, "missing")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)
}

func TestMemoryBackend_Delete(t *testing.T) {
	backend := New()
	ctx := context.Background()

	blob, err := simpleblob.New([]simpleblob.BlobPart{simpleblob.TextPart("x")})
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, "k", blob))
	require.NoError(t, backend.Delete(ctx, "k"))

	_, err = backend.Load(ctx, "k")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)
}
