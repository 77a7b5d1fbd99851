package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-blob/pkg/simpleblob"
)

// Repository implements simpleblob.Repository using in-memory storage
type Repository struct {
	mu    sync.RWMutex
	files map[uuid.UUID]*simpleblob.FileRecord
}

// New creates a new in-memory repository
func New() simpleblob.Repository {
	return &Repository{
		files: make(map[uuid.UUID]*simpleblob.FileRecord),
	}
}

func (r *Repository) CreateFile(ctx context.Context, record *simpleblob.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	recordCopy := *record
	r.files[record.ID] = &recordCopy
	return nil
}

func (r *Repository) GetFile(ctx context.Context, id uuid.UUID) (*simpleblob.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.files[id]
	if !exists {
		return nil, simpleblob.ErrFileNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) ListFiles(ctx context.Context) ([]*simpleblob.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*simpleblob.FileRecord, 0, len(r.files))
	for _, record := range r.files {
		recordCopy := *record
		records = append(records, &recordCopy)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.files[id]; !exists {
		return simpleblob.ErrFileNotFound
	}

	delete(r.files, id)
	return nil
}
