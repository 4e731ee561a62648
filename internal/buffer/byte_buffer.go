// Package buffer provides an owned, growable byte buffer for decode and encode paths.
//
// A ByteBuffer is owned by exactly one call. There are no package-level pools:
// every decode allocates its own buffer, so concurrent calls never share memory.
package buffer

import (
	"errors"
	"io"
)

const (
	// DefaultGrowSize is the minimum growth step for small buffers.
	DefaultGrowSize = 1024 * 16 // 16KiB
)

// ErrFull is returned by Fill when the reader still has data after the
// buffer's capacity has been used up.
var ErrFull = errors.New("buffer capacity exhausted")

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	if capacity < 0 {
		capacity = 0
	}

	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by DefaultGrowSize; buffers larger than four times that
// grow by 25% of their capacity. Growth is never less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultGrowSize
	if cap(bb.B) > 4*DefaultGrowSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Fill reads from r into the buffer's spare capacity until r reports io.EOF.
//
// Fill never grows the buffer. When the capacity is used up it probes r for
// one more byte: if r is at a clean end the data is complete and Fill returns
// nil, otherwise it returns ErrFull and the caller decides whether to retry
// with a larger buffer. Any other error from r is returned unchanged.
func (bb *ByteBuffer) Fill(r io.Reader) error {
	for {
		if len(bb.B) == cap(bb.B) {
			return probeEOF(r)
		}

		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		bb.B = bb.B[:len(bb.B)+n]

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// probeEOF reports whether r has no more data.
func probeEOF(r io.Reader) error {
	var probe [1]byte
	for {
		n, err := r.Read(probe[:])
		if n > 0 {
			return ErrFull
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
