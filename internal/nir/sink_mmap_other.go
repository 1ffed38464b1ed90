//go:build !unix

package nir

import (
	"fmt"
	"os"
)

// MmapSink on non-unix platforms falls back to a plain pre-sized,
// in-memory buffer flushed to disk on Close — golang.org/x/sys/unix's
// Mmap/Munmap have no portable equivalent here. The ByteSink contract
// (fixed capacity, a *PreconditionError panic on overflow) is preserved so callers
// written against this type behave identically across platforms; only
// the zero-copy backing is lost.
type MmapSink struct {
	file *os.File
	data []byte
	pos  int
}

func OpenMmapSink(path string, size int) (*MmapSink, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("nir: open mmap sink: %w", err)
	}

	return &MmapSink{file: f, data: make([]byte, size)}, nil
}

func (m *MmapSink) Close() error {
	if _, err := m.file.WriteAt(m.data, 0); err != nil {
		m.file.Close()

		return fmt.Errorf("nir: flush mmap sink: %w", err)
	}

	return m.file.Close()
}

func (m *MmapSink) Sync() error { return m.file.Sync() }

func (m *MmapSink) Position() int { return m.pos }
func (m *MmapSink) SeekTo(n int)  { m.pos = n }
func (m *MmapSink) Len() int      { return len(m.data) }

func (m *MmapSink) ensure(n int) {
	if m.pos+n > len(m.data) {
		failPrecondition("MMAP_SINK_OVERFLOW", "write past mmap sink capacity", map[string]any{
			"pos": m.pos, "want": n, "cap": len(m.data),
		})
	}
}

func (m *MmapSink) PutU8(v byte) {
	m.ensure(1)
	m.data[m.pos] = v
	m.pos++
}

func (m *MmapSink) PutI16BE(v int16) {
	m.ensure(2)
	m.data[m.pos] = byte(v >> 8)
	m.data[m.pos+1] = byte(v)
	m.pos += 2
}

func (m *MmapSink) PutI32BE(v int32) {
	m.ensure(4)
	m.data[m.pos] = byte(v >> 24)
	m.data[m.pos+1] = byte(v >> 16)
	m.data[m.pos+2] = byte(v >> 8)
	m.data[m.pos+3] = byte(v)
	m.pos += 4
}

func (m *MmapSink) PutI64BE(v int64) {
	m.ensure(8)

	for i := 0; i < 8; i++ {
		m.data[m.pos+i] = byte(v >> uint(56-8*i))
	}

	m.pos += 8
}

func (m *MmapSink) PutF32BE(v float32) {
	m.PutI32BE(int32(float32bits(v)))
}

func (m *MmapSink) PutF64BE(v float64) {
	m.PutI64BE(int64(float64bits(v)))
}

func (m *MmapSink) PutBytes(b []byte) {
	m.ensure(len(b))
	copy(m.data[m.pos:], b)
	m.pos += len(b)
}
