package simpleblob

import (
	"time"

	"github.com/google/uuid"
)

// FileRecord is the persisted metadata row for a registered file. Content
// bytes live in a blob store under ObjectKey; the record tracks where.
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MediaType    string    `json:"media_type,omitempty"`
	Size         int64     `json:"size"`
	LastModified int64     `json:"last_modified"` // epoch milliseconds
	BackendName  string    `json:"backend_name"`
	ObjectKey    string    `json:"object_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ObjectMeta describes a stored object as reported by a blob store backend.
type ObjectMeta struct {
	Key         string            `json:"key"`
	Size        int64             `json:"size"`
	ContentType string            `json:"content_type"`
	UpdatedAt   time.Time         `json:"updated_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
