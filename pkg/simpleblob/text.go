package simpleblob

import (
	"strings"
	"unicode/utf8"
)

// Text materializes the blob as a string, decoding UTF-8 incrementally so a
// multi-byte code point split across chunk boundaries decodes correctly.
// Invalid sequences become U+FFFD; decoding never fails. Unlike decoding the
// result of Bytes, Text never allocates a second full-size byte buffer.
func (b *Blob) Text() string {
	var sb strings.Builder
	sb.Grow(int(b.size))

	var dec utf8Decoder
	cur := newChunkCursor(b, false)
	for chunk := cur.next(); chunk != nil; chunk = cur.next() {
		dec.write(&sb, chunk)
	}
	dec.flush(&sb)
	return sb.String()
}

// utf8Decoder is a streaming UTF-8 decoder. Between writes it carries the
// bytes of an incomplete trailing multi-byte sequence; flush must run exactly
// once after the final write to resolve a truncated tail.
type utf8Decoder struct {
	pending [utf8.UTFMax]byte
	n       int
}

func (d *utf8Decoder) write(sb *strings.Builder, p []byte) {
	// Finish a partial sequence carried from the previous chunk, one byte at
	// a time. An invalid prefix decodes as width-1 error runes, pushing the
	// remaining pending bytes back through the same loop.
	for d.n > 0 {
		if len(p) == 0 {
			return
		}
		d.pending[d.n] = p[0]
		d.n++
		p = p[1:]
		for d.n > 0 && utf8.FullRune(d.pending[:d.n]) {
			r, size := utf8.DecodeRune(d.pending[:d.n])
			sb.WriteRune(r)
			copy(d.pending[:], d.pending[size:d.n])
			d.n -= size
		}
	}

	// Hold back a trailing incomplete sequence and decode the rest in bulk.
	keep := incompleteTailLen(p)
	body := p[:len(p)-keep]
	if utf8.Valid(body) {
		sb.Write(body)
	} else {
		for len(body) > 0 {
			r, size := utf8.DecodeRune(body)
			sb.WriteRune(r)
			body = body[size:]
		}
	}
	copy(d.pending[:], p[len(p)-keep:])
	d.n = keep
}

// flush resolves a carried incomplete sequence as a single replacement
// character.
func (d *utf8Decoder) flush(sb *strings.Builder) {
	if d.n == 0 {
		return
	}
	sb.WriteRune(utf8.RuneError)
	d.n = 0
}

// incompleteTailLen returns how many trailing bytes of p form the start of a
// multi-byte sequence that could be completed by the next chunk. Zero when
// the tail is complete or already invalid.
func incompleteTailLen(p []byte) int {
	lookback := utf8.UTFMax - 1
	if len(p) < lookback {
		lookback = len(p)
	}
	for i := 1; i <= lookback; i++ {
		b := p[len(p)-i]
		if b&0xC0 == 0x80 {
			// Continuation byte, keep scanning for the start byte.
			continue
		}
		if seqLen(b) > i {
			return i
		}
		return 0
	}
	return 0
}

// seqLen returns the encoded length implied by a UTF-8 start byte. Invalid
// start bytes report 1 so they decode immediately as error runes.
func seqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
