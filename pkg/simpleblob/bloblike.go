package simpleblob

import "io"

// BlobLike is the structural contract satisfied by any blob implementation:
// a size, a media-type tag, and at least one way to produce the content.
type BlobLike interface {
	Size() int64
	Type() string
	Bytes() []byte
	Reader() io.Reader
}

type blobStreamer interface {
	Size() int64
	Type() string
	Reader() io.Reader
}

type blobBuffered interface {
	Size() int64
	Type() string
	Bytes() []byte
}

// IsBlobLike reports whether v satisfies the blob contract structurally: it
// carries the size and type tag plus either a Reader or a Bytes method. The
// check is capability-based, so independent implementations of the same
// contract are recognized alongside *Blob and *File.
func IsBlobLike(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(blobStreamer); ok {
		return true
	}
	_, ok := v.(blobBuffered)
	return ok
}
