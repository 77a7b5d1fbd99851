package simpleblob

import (
	"context"

	"github.com/google/uuid"
)

// BlobStore defines the interface for storage backends holding registered
// blob content. Save consumes the blob's pull-based reader, so a backend
// never buffers more than one chunk beyond its own write path.
type BlobStore interface {
	// Save stores the blob's content under the given object key
	Save(ctx context.Context, objectKey string, blob *Blob) error

	// Load reconstructs a blob from the content stored under the key
	Load(ctx context.Context, objectKey string) (*Blob, error)

	// Delete removes the content stored under the key
	Delete(ctx context.Context, objectKey string) error

	// Meta retrieves metadata for a stored object
	Meta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// Repository defines the interface for file record persistence
type Repository interface {
	// CreateFile persists a new file record
	CreateFile(ctx context.Context, record *FileRecord) error

	// GetFile returns the record with the given id
	GetFile(ctx context.Context, id uuid.UUID) (*FileRecord, error)

	// ListFiles returns all records ordered by creation time
	ListFiles(ctx context.Context) ([]*FileRecord, error)

	// DeleteFile removes the record with the given id
	DeleteFile(ctx context.Context, id uuid.UUID) error
}
