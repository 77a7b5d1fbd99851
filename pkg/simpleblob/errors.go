package simpleblob

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrInvalidPart indicates a construction input element is not a valid
	// blob part
	ErrInvalidPart = errors.New("invalid blob part")

	// ErrNilOption indicates a nil option was passed to a constructor
	ErrNilOption = errors.New("nil option")

	// ErrMissingName indicates a file was constructed without a name
	ErrMissingName = errors.New("file name is required")

	// ErrFileNotFound indicates a file record was not found
	ErrFileNotFound = errors.New("file not found")

	// ErrObjectNotFound indicates a stored object was not found
	ErrObjectNotFound = errors.New("object not found")

	// ErrBlobStoreNotFound indicates a blob store was not found
	ErrBlobStoreNotFound = errors.New("blob store not found")
)

// FileError represents an error related to file registry operations
type FileError struct {
	FileID uuid.UUID
	Op     string
	Err    error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file operation %s failed for file %s: %v", e.Op, e.FileID, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob store operations
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
