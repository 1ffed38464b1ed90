package nir

import "encoding/binary"

// ByteSink is a random-access writer over a contiguous byte buffer: the
// serializer's only abstraction over where its output bytes land
// (spec.md §4.1). All multi-byte primitives are big-endian.
type ByteSink interface {
	PutU8(b byte)
	PutI16BE(v int16)
	PutI32BE(v int32)
	PutI64BE(v int64)
	PutF32BE(v float32)
	PutF64BE(v float64)
	PutBytes(b []byte)

	// Position returns the current write offset.
	Position() int

	// SeekTo moves the cursor to n. Subsequent writes overwrite existing
	// bytes at that position rather than appending, until the cursor
	// reaches the prior logical end, at which point writes append again.
	SeekTo(n int)
}

// Buffer is the default, growable, in-memory ByteSink. It never fails a
// write; a bounded alternative (sink_mmap_*.go) exists for callers that
// need to cap memory use.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer returns an empty, growable Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Bytes returns the buffer's contents. The returned slice aliases the
// Buffer's internal storage and must not be retained across further
// writes.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) Position() int { return b.pos }

func (b *Buffer) SeekTo(n int) { b.pos = n }

// ensure grows data so that writing n bytes at the current position
// does not run past the end of the slice.
func (b *Buffer) ensure(n int) {
	need := b.pos + n
	if need <= len(b.data) {
		return
	}

	grown := make([]byte, need)
	copy(grown, b.data)
	b.data = grown
}

func (b *Buffer) advance(n int) { b.pos += n }

func (b *Buffer) PutU8(v byte) {
	b.ensure(1)
	b.data[b.pos] = v
	b.advance(1)
}

func (b *Buffer) PutI16BE(v int16) {
	b.ensure(2)
	binary.BigEndian.PutUint16(b.data[b.pos:], uint16(v))
	b.advance(2)
}

func (b *Buffer) PutI32BE(v int32) {
	b.ensure(4)
	binary.BigEndian.PutUint32(b.data[b.pos:], uint32(v))
	b.advance(4)
}

func (b *Buffer) PutI64BE(v int64) {
	b.ensure(8)
	binary.BigEndian.PutUint64(b.data[b.pos:], uint64(v))
	b.advance(8)
}

func (b *Buffer) PutF32BE(v float32) {
	b.PutI32BE(int32(float32bits(v)))
}

func (b *Buffer) PutF64BE(v float64) {
	b.PutI64BE(int64(float64bits(v)))
}

func (b *Buffer) PutBytes(raw []byte) {
	b.ensure(len(raw))
	copy(b.data[b.pos:], raw)
	b.advance(len(raw))
}
