// Package simpleblob provides an immutable, composable byte-sequence
// abstraction (Blob) with a file-metadata wrapper (File), plus a registry
// service for persisting files through pluggable repository and blob storage
// backends.
//
// A Blob is built once from a sequence of parts -- owned byte chunks, UTF-8
// encoded text, or references to other Blobs -- and is read-only for its
// entire lifetime. Content is produced lazily in bounded chunks, so large or
// deeply composed blobs never require more than one chunk of transient memory
// beyond the caller's own destination. Slicing derives a sub-range that
// shares storage with the source instead of copying it.
//
// Implementations of repositories (memory, Postgres) and blob stores (memory,
// filesystem, S3) are provided under subpackages.
package simpleblob
