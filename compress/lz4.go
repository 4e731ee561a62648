package compress

import (
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/raquet/errs"
)

// lz4MaxDecodedSize bounds LZ4 buffer growth; a single band tile never gets close.
const lz4MaxDecodedSize = 128 * 1024 * 1024 // 128MB

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var lc lz4.Compressor
	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// LZ4 blocks do not record their decoded size, so the buffer starts at 4x the
// compressed size and doubles on ErrInvalidSourceShortBuffer up to 128MB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4

	for bufSize <= lz4MaxDecodedSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < lz4MaxDecodedSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("%w: lz4: %w", errs.ErrDecompression, err)
		}

		return buf[:n], nil
	}

	return nil, fmt.Errorf("%w: lz4: %w", errs.ErrDecompression, lz4.ErrInvalidSourceShortBuffer)
}
