package simpleblob

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-blob/pkg/simpleblob/objectkey"
)

// Registry defines the file registry: it persists File content through a
// blob store and the describing record through a repository.
type Registry interface {
	// Put stores the file's content and metadata, returning the new record
	Put(ctx context.Context, file *File) (*FileRecord, error)

	// Get reconstructs a registered file along with its record
	Get(ctx context.Context, id uuid.UUID) (*File, *FileRecord, error)

	// GetRecord returns only the metadata record
	GetRecord(ctx context.Context, id uuid.UUID) (*FileRecord, error)

	// List returns all file records
	List(ctx context.Context) ([]*FileRecord, error)

	// Delete removes both the record and the stored content
	Delete(ctx context.Context, id uuid.UUID) error

	// GetStore returns a registered blob store by name
	GetStore(name string) (BlobStore, error)
}

// registry implements the Registry interface
type registry struct {
	repository   Repository
	blobStores   map[string]BlobStore
	defaultStore string
	keygen       objectkey.Generator
	logger       *slog.Logger
}

// RegistryOption represents a functional option for configuring the registry
type RegistryOption func(*registry)

// WithRepository sets the file record repository
func WithRepository(repo Repository) RegistryOption {
	return func(r *registry) {
		r.repository = repo
	}
}

// WithBlobStore adds a blob storage backend under a name. The first store
// added becomes the default unless WithDefaultBlobStore overrides it.
func WithBlobStore(name string, store BlobStore) RegistryOption {
	return func(r *registry) {
		if r.blobStores == nil {
			r.blobStores = make(map[string]BlobStore)
		}
		r.blobStores[name] = store
		if r.defaultStore == "" {
			r.defaultStore = name
		}
	}
}

// WithDefaultBlobStore selects which named store receives new content
func WithDefaultBlobStore(name string) RegistryOption {
	return func(r *registry) {
		r.defaultStore = name
	}
}

// WithObjectKeyGenerator sets the storage key generation strategy
func WithObjectKeyGenerator(g objectkey.Generator) RegistryOption {
	return func(r *registry) {
		r.keygen = g
	}
}

// WithLogger sets the structured logger used by registry operations
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *registry) {
		r.logger = logger
	}
}

// NewRegistry creates a registry instance with the given options. A
// repository and at least one blob store are required.
func NewRegistry(options ...RegistryOption) (Registry, error) {
	r := &registry{
		blobStores: make(map[string]BlobStore),
		keygen:     objectkey.NewShardedGenerator(),
		logger:     slog.Default(),
	}

	for _, option := range options {
		option(r)
	}

	if r.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if len(r.blobStores) == 0 {
		return nil, fmt.Errorf("at least one blob store is required")
	}
	if _, ok := r.blobStores[r.defaultStore]; !ok {
		return nil, fmt.Errorf("default blob store %q is not registered", r.defaultStore)
	}

	return r, nil
}

func (r *registry) GetStore(name string) (BlobStore, error) {
	store, ok := r.blobStores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlobStoreNotFound, name)
	}
	return store, nil
}

func (r *registry) Put(ctx context.Context, file *File) (*FileRecord, error) {
	store := r.blobStores[r.defaultStore]

	now := time.Now().UTC()
	record := &FileRecord{
		ID:           uuid.New(),
		Name:         file.Name(),
		MediaType:    file.Type(),
		Size:         file.Size(),
		LastModified: file.LastModified(),
		BackendName:  r.defaultStore,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	record.ObjectKey = r.keygen.GenerateKey(record.ID, record.Name)

	if err := store.Save(ctx, record.ObjectKey, file.Blob); err != nil {
		return nil, &StorageError{
			Backend: record.BackendName,
			Key:     record.ObjectKey,
			Op:      "save",
			Err:     err,
		}
	}

	if err := r.repository.CreateFile(ctx, record); err != nil {
		// Best effort: don't leave orphaned content behind a failed record.
		if derr := store.Delete(ctx, record.ObjectKey); derr != nil {
			r.logger.Warn("orphaned object after failed record create",
				"backend", record.BackendName, "key", record.ObjectKey, "err", derr)
		}
		return nil, &FileError{FileID: record.ID, Op: "create", Err: err}
	}

	r.logger.Info("file registered",
		"id", record.ID, "name", record.Name, "size", record.Size, "backend", record.BackendName)
	return record, nil
}

func (r *registry) Get(ctx context.Context, id uuid.UUID) (*File, *FileRecord, error) {
	record, err := r.GetRecord(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	store, err := r.GetStore(record.BackendName)
	if err != nil {
		return nil, nil, &FileError{FileID: id, Op: "get", Err: err}
	}

	blob, err := store.Load(ctx, record.ObjectKey)
	if err != nil {
		return nil, nil, &StorageError{
			Backend: record.BackendName,
			Key:     record.ObjectKey,
			Op:      "load",
			Err:     err,
		}
	}

	file, err := NewFile([]BlobPart{BlobRef(blob)}, record.Name,
		WithType(record.MediaType),
		WithLastModified(record.LastModified),
	)
	if err != nil {
		return nil, nil, &FileError{FileID: id, Op: "get", Err: err}
	}
	return file, record, nil
}

func (r *registry) GetRecord(ctx context.Context, id uuid.UUID) (*FileRecord, error) {
	record, err := r.repository.GetFile(ctx, id)
	if err != nil {
		return nil, &FileError{FileID: id, Op: "get", Err: err}
	}
	return record, nil
}

func (r *registry) List(ctx context.Context) ([]*FileRecord, error) {
	return r.repository.ListFiles(ctx)
}

func (r *registry) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.repository.GetFile(ctx, id)
	if err != nil {
		return &FileError{FileID: id, Op: "delete", Err: err}
	}

	store, err := r.GetStore(record.BackendName)
	if err != nil {
		return &FileError{FileID: id, Op: "delete", Err: err}
	}

	if err := store.Delete(ctx, record.ObjectKey); err != nil {
		return &StorageError{
			Backend: record.BackendName,
			Key:     record.ObjectKey,
			Op:      "delete",
			Err:     err,
		}
	}

	if err := r.repository.DeleteFile(ctx, id); err != nil {
		return &FileError{FileID: id, Op: "delete", Err: err}
	}

	r.logger.Info("file deleted", "id", id, "key", record.ObjectKey)
	return nil
}
