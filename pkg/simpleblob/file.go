package simpleblob

import "time"

// File wraps a Blob with a name and a last-modified timestamp. Everything
// else -- size, type, materialization, streaming, slicing -- is the embedded
// blob's behavior. Files are immutable once constructed.
type File struct {
	*Blob
	name         string
	lastModified int64
}

// NewFile constructs a file from a part sequence and a required name. An
// empty name fails with ErrMissingName.
//
// When WithLastModified is not supplied, the file is stamped with the current
// wall-clock time in epoch milliseconds. The platform contract this mirrors
// has an inverted condition here (its current-time fallback is unreachable
// when a numeric value parses, NaN included); this implementation follows the
// evident intent instead: an explicit timestamp wins, absence means now.
func NewFile(parts []BlobPart, name string, opts ...Option) (*File, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	var o constructOptions
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&o)
	}

	b, err := New(parts, WithType(o.mediaType))
	if err != nil {
		return nil, err
	}

	lastModified := o.lastModified
	if !o.lastModifiedSet {
		lastModified = time.Now().UnixMilli()
	}

	return &File{
		Blob:         b,
		name:         name,
		lastModified: lastModified,
	}, nil
}

// Name returns the file name exactly as given at construction.
func (f *File) Name() string { return f.name }

// LastModified returns the file's last-modified timestamp in epoch
// milliseconds.
func (f *File) LastModified() int64 { return f.lastModified }
