//go:build unix

package nir

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MmapSink is a fixed-size ByteSink backed by an mmap'd file: a
// serialization target for definition forests too large to also hold
// as a second in-memory copy before the caller flushes it to disk.
// Unlike Buffer it never grows — writing past the pre-sized capacity
// panics with a *PreconditionError (code MMAP_SINK_OVERFLOW); the
// ByteSink write methods have no error result to report it through.
type MmapSink struct {
	file *os.File
	data []byte
	pos  int
}

// OpenMmapSink creates (or truncates) path, sizes it to size bytes, and
// maps it PROT_READ|PROT_WRITE/MAP_SHARED so writes land directly on
// the backing file.
func OpenMmapSink(path string, size int) (*MmapSink, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("nir: open mmap sink: %w", err)
	}

	if err := f.Truncate(int64(size)); err != nil {
		f.Close()

		return nil, fmt.Errorf("nir: size mmap sink: %w", err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("nir: mmap sink: %w", err)
	}

	return &MmapSink{file: f, data: data}, nil
}

// Close unmaps and closes the backing file. The mapped region must not
// be used afterward.
func (m *MmapSink) Close() error {
	if err := unix.Munmap(m.data); err != nil {
		m.file.Close()

		return fmt.Errorf("nir: munmap sink: %w", err)
	}

	return m.file.Close()
}

// Sync flushes dirty pages to the backing file (msync).
func (m *MmapSink) Sync() error {
	return unix.Msync(m.data, unix.MS_SYNC)
}

func (m *MmapSink) Position() int  { return m.pos }
func (m *MmapSink) SeekTo(n int)   { m.pos = n }
func (m *MmapSink) Len() int       { return len(m.data) }

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
