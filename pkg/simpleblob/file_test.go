package simpleblob_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

func TestNewFile(t *testing.T) {
	f, err := simpleblob.NewFile([]simpleblob.BlobPart{simpleblob.TextPart("a")}, "x.txt")
	require.NoError(t, err)

	assert.Equal(t, "x.txt", f.Name())
	assert.Equal(t, int64(1), f.Size())
	assert.Equal(t, "a", f.Text())
}

func TestNewFileRequiresName(t *testing.T) {
	_, err := simpleblob.NewFile([]simpleblob.BlobPart{simpleblob.TextPart("a")}, "")
	assert.ErrorIs(t, err, simpleblob.ErrMissingName)
}

func TestNewFileNamePreservedVerbatim(t *testing.T) {
	// No sanitization or case folding on the name.
	name := "Straße / Bericht?.TXT"
	f, err := simpleblob.NewFile(nil, name)
	require.NoError(t, err)
	assert.Equal(t, name, f.Name())
}

func TestNewFileLastModifiedDefaultsToNow(t *testing.T) {
	before := time.Now().UnixMilli()
	f, err := simpleblob.NewFile(nil, "x.txt")
	require.NoError(t, err)
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, f.LastModified(), before)
	assert.LessOrEqual(t, f.LastModified(), after)
}

func TestNewFileLastModifiedExplicit(t *testing.T) {
	f, err := simpleblob.NewFile(nil, "x.txt", simpleblob.WithLastModified(1234567890123))
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123), f.LastModified())

	// Zero is a valid explicit timestamp, not "unset".
	f, err = simpleblob.NewFile(nil, "x.txt", simpleblob.WithLastModified(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.LastModified())
}

func TestFileDelegatesToBlob(t *testing.T) {
	f, err := simpleblob.NewFile(
		[]simpleblob.BlobPart{simpleblob.TextPart("0123456789")},
		"digits.txt",
		simpleblob.WithType("text/plain"),
	)
	require.NoError(t, err)

	assert.Equal(t, "text/plain", f.Type())
	assert.Equal(t, []byte("0123456789"), f.Bytes())

	// Slicing a file yields a plain blob over the same content.
	s := f.SliceRange(2, 5)
	assert.Equal(t, "234", s.Text())
}

func TestFileAsBlobPart(t *testing.T) {
	f, err := simpleblob.NewFile([]simpleblob.BlobPart{simpleblob.TextPart("inner")}, "f.txt")
	require.NoError(t, err)

	b, err := simpleblob.NewFromAny([]any{"<", f, ">"})
	require.NoError(t, err)
	assert.Equal(t, "<inner>", b.Text())
}
