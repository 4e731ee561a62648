// Package compress provides the decompression codecs for raster band payloads.
//
// A band payload is one tile's one band: width*height pixels in row-major
// order, optionally compressed as a whole. The compression identifier comes
// from the tile metadata or from the caller.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload is the raw pixel bytes. Also used
//     for any unrecognized identifier.
//   - Gzip (format.CompressionGzip): the canonical raquet codec. The decoded
//     size is not known in advance, see Size Estimation below.
//   - Zstd (format.CompressionZstd): frames carry the content size.
//   - S2 (format.CompressionS2): blocks carry the decoded length.
//   - LZ4 (format.CompressionLZ4): raw blocks, decoded with a doubling buffer.
//
// # Size Estimation
//
// Gzip decoding starts with an output buffer of EstimateGzipSize(len(input))
// bytes: one 256x256 single-byte tile for small inputs, 50x the compressed
// size for inputs above 100 bytes. If the stream does not fit, it is decoded
// again once with 4x the capacity. A stream that still does not fit, or that
// is corrupt or truncated, fails with errs.ErrDecompression.
//
//	codec, _ := compress.GetCodec(format.CompressionGzip)
//	raw, err := codec.Decompress(payload)
//	if errors.Is(err, errs.ErrDecompression) {
//	    // corrupt tile
//	}
//
// # Thread Safety
//
// Codecs are stateless values. Every Decompress call creates its own codec
// stream and closes it before returning, including on error paths, so codecs
// can be shared freely across goroutines.
//
// # Empty Input
//
// Decompressing an empty payload returns an empty result and no error for
// every codec. Deciding whether an empty band is meaningful is left to the
// caller.
package compress
