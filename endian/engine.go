// Package endian provides the byte order used to read multi-byte pixels from band payloads.
//
// Band payloads are written by the producer's native memory layout, which in
// practice is little-endian, so GetLittleEndianEngine is the default everywhere
// in raquet. GetBigEndianEngine exists for payloads produced on big-endian
// systems.
//
//	engine := endian.GetLittleEndianEngine()
//	v := engine.Uint16(payload[off : off+2])
//
// All functions in this package are safe for concurrent use. The returned
// engines are the immutable binary.LittleEndian and binary.BigEndian values.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// Pixel decoding only needs the ByteOrder half; the AppendByteOrder half is
// used when building band payloads.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine reads the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// Name returns "little" or "big" for the given engine.
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big"
	}

	return "little"
}
