package compress

// NoOpCompressor passes band payloads through unchanged.
//
// It backs the "none" compression identifier and any unrecognized one.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice as-is, without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
//
// Note: The returned slice shares memory with the input. Pixel decoding only
// reads from it, so the caller's band payload is never modified.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
