package compress

// ZstdCompressor provides Zstandard compression for band payloads.
//
// Zstd frames record their content size, so decompression needs no size
// estimate. The default build uses the pure-Go klauspost/compress decoder;
// building with the gozstd tag (and cgo) switches to valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
