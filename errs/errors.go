// Package errs defines the sentinel errors returned by raquet packages.
//
// Call sites wrap these with context using fmt.Errorf and %w, so callers
// should match them with errors.Is rather than by equality.
package errs

import "errors"

// Pixel codec errors.
var (
	// ErrDecompression indicates corrupt or truncated compressed input, or a
	// codec stream that could not be initialized.
	ErrDecompression = errors.New("decompression failed")
	// ErrUnsupportedDataType indicates a pixel data type tag outside the supported set.
	ErrUnsupportedDataType = errors.New("unsupported data type")
	// ErrUnsupportedCompression indicates a compression type without a codec.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrInvalidDimensions indicates non-positive tile dimensions, or a decoded
	// buffer too short for the declared width*height grid.
	ErrInvalidDimensions = errors.New("invalid tile dimensions")
	// ErrPixelOutOfBounds indicates a point query outside the tile grid.
	ErrPixelOutOfBounds = errors.New("pixel out of bounds")
)

// Metadata errors.
var (
	// ErrBandNotFound indicates a band index out of range or a band name without a match.
	ErrBandNotFound = errors.New("band not found")
	// ErrMalformedMetadata indicates metadata text that is not a JSON or YAML
	// object. Only ParseStrict reports it; Parse falls back to defaults.
	ErrMalformedMetadata = errors.New("malformed metadata")
)

// Host-facing errors.
var (
	// ErrEmptyBand indicates a nil or zero-length band payload. Results carrying
	// this error are absent rather than zeroed.
	ErrEmptyBand = errors.New("empty band payload")
)
