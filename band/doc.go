// Package band decodes and encodes one band of one raster tile.
//
// A band payload is a row-major width x height grid of fixed-width pixels,
// optionally compressed as a whole. The pixel at column x, row y lives at
// flat index y*width + x. A Layout carries everything needed to interpret a
// payload; build it explicitly with NewLayout or from table metadata with
// LayoutFromMetadata:
//
//	layout, err := band.NewLayout(format.DataTypeUint16, 256, 256,
//	    band.WithCompression(format.CompressionGzip),
//	    band.WithNoData(0),
//	)
//
//	d, err := band.Decode(payload, layout)
//	v, err := d.At(10, 20)        // point read
//	for v := range d.All() { ... } // bulk read, no []float64 materialized
//
// Decode decompresses once and checks that the result covers the whole
// grid; a shorter buffer is corrupt input and fails with
// errs.ErrInvalidDimensions rather than being truncated.
//
// Encode and EncodeValues build payloads, which is how fixtures and
// producers create tiles.
package band
