package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

func TestFSBackend_RequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base directory is required")
}

func TestFSBackend_RoundTrip(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	blob, err := simpleblob.New([]simpleblob.BlobPart{simpleblob.TextPart("hello fs")})
	require.NoError(t, err)

	key := "files/ab/cdef_report.txt"
	require.NoError(t, backend.Save(ctx, key, blob))

	loaded, err := backend.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "hello fs", loaded.Text())

	meta, err := backend.Meta(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(8), meta.Size)
	assert.True(t, strings.HasPrefix(meta.ContentType, "text/plain"))
}

func TestFSBackend_LargeBlobStreams(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	data := make([]byte, 200000)
	for i := range data {
		data[i] = byte(i % 163)
	}
	blob, err := simpleblob.New([]simpleblob.BlobPart{simpleblob.BytesPart(data)})
	require.NoError(t, err)

	require.NoError(t, backend.Save(ctx, "big.bin", blob))

	loaded, err := backend.Load(ctx, "big.bin")
	require.NoError(t, err)
	assert.Equal(t, data, loaded.Bytes())
}

func TestFSBackend_DeleteCleansEmptyDirs(t *testing.T) {
	base := t.TempDir()
	backend, err := New(Config{BaseDir: base})
	require.NoError(t, err)
	ctx := context.Background()

	blob, err := simpleblob.New([]simpleblob.BlobPart{simpleblob.TextPart("x")})
	require.NoError(t, err)

	key := "files/ab/deadbeef_x.txt"
	require.NoError(t, backend.Save(ctx, key, blob))
	require.NoError(t, backend.Delete(ctx, key))

	_, err = backend.Load(ctx, key)
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)

	// Intermediate directories left empty by the delete are removed.
	_, err = os.Stat(filepath.Join(base, "files", "ab"))
	assert.True(t, os.IsNotExist(err))
}

func TestFSBackend_NotFound(t *testing.T) {
	backend, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = backend.Load(ctx, "missing")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)

	err = backend.Delete(ctx, "missing")
	assert.ErrorIs(t, err, simpleblob.ErrObjectNotFound)
}
