package simpleblob

import (
	"fmt"
	"strings"
)

// ChunkSize is the upper bound, in bytes, on a single chunk produced by blob
// iteration. Materialization, streaming, and storage uploads all walk blob
// content in chunks of at most this size.
const ChunkSize = 64 * 1024

type partKind int

const (
	rawPart partKind = iota
	blobRefPart
)

// part is one storage unit of a blob: either an owned byte chunk or a shared
// reference to another blob. Dispatch on kind is explicit in iteration and
// slicing.
type part struct {
	kind partKind
	raw  []byte
	blob *Blob
}

func (p part) size() int64 {
	if p.kind == blobRefPart {
		return p.blob.size
	}
	return int64(len(p.raw))
}

// Blob is an immutable byte sequence assembled from an ordered part list.
// All state is frozen at construction; concurrent reads, materializations,
// and slices over the same Blob are safe without locking.
type Blob struct {
	parts     []part
	size      int64
	mediaType string
}

// BlobPart is one element of a blob's construction input. Build values with
// BytesPart, TextPart, or BlobRef; the zero value is invalid and rejected by
// New.
type BlobPart struct {
	p  part
	ok bool
}

// BytesPart copies b into an owned part. The copy is taken at ingestion time
// so later mutation of the caller's slice cannot alias stored content.
func BytesPart(b []byte) BlobPart {
	return BlobPart{p: part{kind: rawPart, raw: append([]byte(nil), b...)}, ok: true}
}

// TextPart encodes s as UTF-8 into an owned part.
func TextPart(s string) BlobPart {
	return BlobPart{p: part{kind: rawPart, raw: []byte(s)}, ok: true}
}

// BlobRef wraps an existing blob as a shared part without copying its bytes.
// The referenced blob stays alive at least as long as any blob holding the
// reference.
func BlobRef(b *Blob) BlobPart {
	if b == nil {
		return BlobPart{}
	}
	return BlobPart{p: part{kind: blobRefPart, blob: b}, ok: true}
}

// Option configures blob or file construction.
type Option func(*constructOptions)

type constructOptions struct {
	mediaType       string
	lastModified    int64
	lastModifiedSet bool
}

// WithType sets the media type of the new blob or file. Types containing
// characters outside printable ASCII are coerced to the empty string; casing
// is preserved.
func WithType(mediaType string) Option {
	return func(o *constructOptions) {
		o.mediaType = mediaType
	}
}

// WithLastModified sets the last-modified timestamp (epoch milliseconds) of a
// new File. It has no effect on New.
func WithLastModified(ms int64) Option {
	return func(o *constructOptions) {
		o.lastModified = ms
		o.lastModifiedSet = true
	}
}

// New constructs a blob from an ordered part sequence. Byte and text parts
// were already copied by their BlobPart constructors; blob references are
// shared. Size is the sum of all part sizes and is computed once.
func New(parts []BlobPart, opts ...Option) (*Blob, error) {
	var o constructOptions
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(&o)
	}

	b := &Blob{
		parts:     make([]part, 0, len(parts)),
		mediaType: normalizeType(o.mediaType),
	}
	for i, bp := range parts {
		if !bp.ok {
			return nil, fmt.Errorf("part %d: %w", i, ErrInvalidPart)
		}
		b.parts = append(b.parts, bp.p)
		b.size += bp.p.size()
	}
	return b, nil
}

// NewFromAny constructs a blob from a heterogeneous value sequence. Each
// element must be a []byte, string, *Blob, or *File; anything else fails with
// ErrInvalidPart.
func NewFromAny(values []any, opts ...Option) (*Blob, error) {
	parts := make([]BlobPart, 0, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case []byte:
			parts = append(parts, BytesPart(v))
		case string:
			parts = append(parts, TextPart(v))
		case *Blob:
			parts = append(parts, BlobRef(v))
		case *File:
			if v == nil {
				return nil, fmt.Errorf("element %d: %w", i, ErrInvalidPart)
			}
			parts = append(parts, BlobRef(v.Blob))
		default:
			return nil, fmt.Errorf("element %d (%T): %w", i, v, ErrInvalidPart)
		}
	}
	return New(parts, opts...)
}

// Size returns the total byte count of the blob.
func (b *Blob) Size() int64 { return b.size }

// Type returns the blob's media type as stored at construction or slice time.
func (b *Blob) Type() string { return b.mediaType }

// Bytes materializes the blob into a single contiguous buffer of exactly
// Size() bytes.
func (b *Blob) Bytes() []byte {
	buf := make([]byte, b.size)
	off := 0
	cur := newChunkCursor(b, false)
	for chunk := cur.next(); chunk != nil; chunk = cur.next() {
		off += copy(buf[off:], chunk)
	}
	return buf
}

// Slice returns a new blob covering the byte range [start, end) of b, with
// the given media type lowercased. Negative offsets count from the end;
// out-of-range offsets are clamped into [0, Size()]. Raw parts inside the
// range are shared as sub-views and referenced blobs are sliced recursively,
// so no bytes are copied. The source blob is never modified.
//
// Note the type asymmetry with construction: New preserves the case of a
// supplied type, Slice always lowercases it.
func (b *Blob) Slice(start, end int64, mediaType string) *Blob {
	size := b.size

	relativeStart := start
	if relativeStart < 0 {
		relativeStart = max(size+relativeStart, 0)
	} else {
		relativeStart = min(relativeStart, size)
	}
	relativeEnd := end
	if relativeEnd < 0 {
		relativeEnd = max(size+relativeEnd, 0)
	} else {
		relativeEnd = min(relativeEnd, size)
	}
	span := max(relativeEnd-relativeStart, 0)

	var parts []part
	var added int64
	for _, p := range b.parts {
		if added >= span {
			break
		}
		psize := p.size()
		if psize <= relativeStart {
			// Entirely before the window: shift the window coordinates to be
			// relative to the next part.
			relativeStart -= psize
			relativeEnd -= psize
			continue
		}
		takeEnd := min(psize, relativeEnd)
		switch p.kind {
		case rawPart:
			parts = append(parts, part{kind: rawPart, raw: p.raw[relativeStart:takeEnd]})
			added += takeEnd - relativeStart
		case blobRefPart:
			sub := p.blob.Slice(relativeStart, takeEnd, "")
			parts = append(parts, part{kind: blobRefPart, blob: sub})
			added += sub.size
		}
		relativeEnd -= psize
		relativeStart = 0
	}

	return &Blob{
		parts:     parts,
		size:      span,
		mediaType: strings.ToLower(mediaType),
	}
}

// SliceRange is Slice with an empty media type.
func (b *Blob) SliceRange(start, end int64) *Blob {
	return b.Slice(start, end, "")
}

// normalizeType coerces any type string containing a character outside
// printable ASCII (0x20-0x7E) to the empty string. Case is preserved.
func normalizeType(t string) string {
	for i := 0; i < len(t); i++ {
		if t[i] < 0x20 || t[i] > 0x7e {
			return ""
		}
	}
	return t
}
