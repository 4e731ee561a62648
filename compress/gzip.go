package compress

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/internal/buffer"
)

// Gzip output size estimation. A gzip member only records its decoded size
// modulo 2^32 in the trailer, so the decoder guesses and retries once.
const (
	// GzipDefaultEstimate is the initial capacity for small inputs: one
	// canonical 256x256 tile with one byte per pixel.
	GzipDefaultEstimate = 256 * 256
	// GzipLargeInputThreshold is the compressed size above which the estimate
	// scales with the input.
	GzipLargeInputThreshold = 100
	// GzipExpansionFactor multiplies the compressed size for large inputs.
	GzipExpansionFactor = 50
	// GzipRetryMultiplier scales the capacity for the single retry.
	GzipRetryMultiplier = 4
)

type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a new gzip codec.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// EstimateGzipSize returns the initial output capacity used to decompress
// compressedSize bytes of gzip input.
//
// Inputs above GzipLargeInputThreshold scale by GzipExpansionFactor, but the
// estimate never drops below GzipDefaultEstimate: a small compressed input
// usually means a very compressible tile, not a small one.
func EstimateGzipSize(compressedSize int) int {
	if compressedSize > GzipLargeInputThreshold {
		return max(compressedSize*GzipExpansionFactor, GzipDefaultEstimate)
	}

	return GzipDefaultEstimate
}

// Compress compresses the input data as a single gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	zw, err := gzip.NewWriterLevel(&out, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Decompress decompresses gzip input whose decoded size is unknown.
//
// The first pass uses EstimateGzipSize. If the output does not fit, the
// stream is decoded again from the start with GzipRetryMultiplier times the
// capacity. If that still does not reach a clean end of stream, or the stream
// is corrupt or truncated at any point, the error wraps errs.ErrDecompression.
// Each pass closes its reader before returning.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	capacity := EstimateGzipSize(len(data))

	out, err := inflateGzip(data, capacity)
	if errors.Is(err, buffer.ErrFull) {
		capacity *= GzipRetryMultiplier
		out, err = inflateGzip(data, capacity)
	}

	if errors.Is(err, buffer.ErrFull) {
		return nil, fmt.Errorf("%w: gzip: output exceeds %d bytes", errs.ErrDecompression, capacity)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", errs.ErrDecompression, err)
	}

	return out, nil
}

// inflateGzip decodes data into a buffer of the given capacity. It returns
// buffer.ErrFull when the decoded stream is larger than capacity.
func inflateGzip(data []byte, capacity int) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := buffer.NewByteBuffer(capacity)
	if err := out.Fill(zr); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
