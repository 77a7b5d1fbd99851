package simpleblob

import "io"

// chunkCursor walks a blob's part list depth first, yielding byte chunks of
// at most ChunkSize. Referenced blobs are flattened in place, so the chunk
// order is exactly the blob's byte order. Each cursor is an independent
// traversal over immutable data; any number may run concurrently.
//
// In cloning mode each chunk is an independent copy, required when chunks may
// be retained beyond the next call. Non-cloning mode yields sub-views of the
// stored bytes and is used internally by Bytes and Text, which consume each
// chunk before requesting the next.
type chunkCursor struct {
	clone bool
	stack []cursorFrame
}

type cursorFrame struct {
	parts []part
	index int
	off   int
}

func newChunkCursor(b *Blob, clone bool) *chunkCursor {
	return &chunkCursor{
		clone: clone,
		stack: []cursorFrame{{parts: b.parts}},
	}
}

// next returns the next chunk, or nil when the traversal is complete.
func (c *chunkCursor) next() []byte {
	for len(c.stack) > 0 {
		f := &c.stack[len(c.stack)-1]
		if f.index >= len(f.parts) {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		p := f.parts[f.index]
		if p.kind == blobRefPart {
			f.index++
			f.off = 0
			c.stack = append(c.stack, cursorFrame{parts: p.blob.parts})
			continue
		}
		if f.off >= len(p.raw) {
			f.index++
			f.off = 0
			continue
		}
		end := f.off + ChunkSize
		if end > len(p.raw) {
			end = len(p.raw)
		}
		chunk := p.raw[f.off:end]
		f.off = end
		if c.clone {
			chunk = append([]byte(nil), chunk...)
		}
		return chunk
	}
	return nil
}

// Reader returns a pull-based byte source over the blob's content. Each read
// is served from at most one in-flight chunk; the cursor never runs ahead of
// consumption, so backpressure is entirely the caller's pull rate. Chunks are
// cloned, making the reader safe to hand to consumers that retain buffers.
func (b *Blob) Reader() io.Reader {
	return &blobReader{cur: newChunkCursor(b, true)}
}

type blobReader struct {
	cur   *chunkCursor
	chunk []byte
}

func (r *blobReader) Read(p []byte) (int, error) {
	for len(r.chunk) == 0 {
		if r.cur == nil {
			return 0, io.EOF
		}
		r.chunk = r.cur.next()
		if r.chunk == nil {
			r.cur = nil
			return 0, io.EOF
		}
	}
	n := copy(p, r.chunk)
	r.chunk = r.chunk[n:]
	return n, nil
}
