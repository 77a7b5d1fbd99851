package memory

import (
	"context"
	"io"
	"sync"

	"github.com/tendant/simple-blob/pkg/simpleblob"
)

// Backend is an in-memory implementation of the simpleblob.BlobStore interface
type Backend struct {
	mu         sync.RWMutex
	objects    map[string][]byte
	mediaTypes map[string]string
}

// New creates a new in-memory storage backend
func New() simpleblob.BlobStore {
	return &Backend{
		objects:    make(map[string][]byte),
		mediaTypes: make(map[string]string),
	}
}

// Save stores the blob's content in memory under the object key
func (b *Backend) Save(ctx context.Context, objectKey string, blob *simpleblob.Blob) error {
	data, err := io.ReadAll(blob.Reader())
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	mediaType := blob.Type()
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	b.mediaTypes[objectKey] = mediaType
	return nil
}

// Load reconstructs a blob from memory
func (b *Backend) Load(ctx context.Context, objectKey string) (*simpleblob.Blob, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, simpleblob.ErrObjectNotFound
	}

	return simpleblob.New(
		[]simpleblob.BlobPart{simpleblob.BytesPart(data)},
		simpleblob.WithType(b.mediaTypes[objectKey]),
	)
}

// Delete removes content from memory
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return simpleblob.ErrObjectNotFound
	}

	delete(b.objects, objectKey)
	delete(b.mediaTypes, objectKey)
	return nil
}

// Meta retrieves metadata for an object in memory
func (b *Backend) Meta(ctx context.Context, objectKey string) (*simpleblob.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, simpleblob.ErrObjectNotFound
	}

	mediaType := b.mediaTypes[objectKey]
	return &simpleblob.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: mediaType,
		Metadata:    map[string]string{"content_type": mediaType},
	}, nil
}
