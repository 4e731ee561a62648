package encoding

import "iter"

// ColumnarEncoder appends values of type T to an owned byte buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Reset.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded values.
	Size() int

	// Reset discards all encoded values and keeps the buffer capacity.
	Reset()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

type ColumnarDecoder[T comparable] interface {
	// All returns an iterator that yields the first count decoded values.
	//
	// If data holds fewer than count values the iterator yields nothing; a
	// short buffer is corrupt input and callers are expected to validate
	// lengths before iterating when they need an error instead.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the value at the zero-based index.
	//
	// The second return value is false when index is outside [0, count) or
	// the value does not fit inside data.
	At(data []byte, index int, count int) (T, bool)
}
