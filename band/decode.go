package band

import (
	"fmt"
	"iter"

	"github.com/arloliu/raquet/compress"
	"github.com/arloliu/raquet/encoding"
	"github.com/arloliu/raquet/errs"
)

// Decoded is one tile band after decompression.
//
// It is owned by the call that decoded it and is read-only, so it can be
// shared between goroutines once Decode returns.
type Decoded struct {
	raw     []byte
	layout  Layout
	decoder encoding.PixelDecoder
}

// Decode decompresses payload according to layout.
//
// The payload is decompressed exactly once; all reads on the returned band
// use the decompressed bytes.
//
// Returns:
//   - *Decoded: band ready for point or bulk reads
//   - error: errs.ErrInvalidDimensions for an invalid layout or when the
//     decompressed bytes are shorter than the width*height grid,
//     errs.ErrUnsupportedDataType, or errs.ErrDecompression from the codec
func Decode(payload []byte, layout Layout) (*Decoded, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	decoder, err := encoding.NewPixelDecoder(layout.DataType, layout.ByteOrder())
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(layout.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, err
	}

	if need := layout.RawSize(); len(raw) < need {
		return nil, fmt.Errorf("%w: %s needs %d bytes, decoded %d", errs.ErrInvalidDimensions, layout, need, len(raw))
	}

	return &Decoded{
		raw:     raw,
		layout:  layout,
		decoder: decoder,
	}, nil
}

// Layout returns the layout the band was decoded with.
func (d *Decoded) Layout() Layout {
	return d.layout
}

// Bytes returns the decompressed pixel bytes. Bytes past the grid, if any,
// are included. The caller must not modify the returned slice.
func (d *Decoded) Bytes() []byte {
	return d.raw
}

// Len returns the number of pixels in the grid.
func (d *Decoded) Len() int {
	return d.layout.Pixels()
}

// At returns the pixel at column x, row y, widened to float64.
func (d *Decoded) At(x, y int) (float64, error) {
	if x < 0 || x >= d.layout.Width || y < 0 || y >= d.layout.Height {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", errs.ErrPixelOutOfBounds, x, y, d.layout.Width, d.layout.Height)
	}

	v, ok := d.decoder.At(d.raw, y*d.layout.Width+x, d.Len())
	if !ok {
		return 0, fmt.Errorf("%w: pixel (%d,%d) past %d decoded bytes", errs.ErrInvalidDimensions, x, y, len(d.raw))
	}

	return v, nil
}

// All yields every pixel in row-major order, widened to float64.
func (d *Decoded) All() iter.Seq[float64] {
	return d.decoder.All(d.raw, d.Len())
}

// Values returns every pixel in row-major order, widened to float64.
func (d *Decoded) Values() []float64 {
	values := make([]float64, 0, d.Len())
	for v := range d.All() {
		values = append(values, v)
	}

	return values
}

// DecodePixel decodes payload and returns the pixel at column x, row y.
func DecodePixel(payload []byte, layout Layout, x, y int) (float64, error) {
	d, err := Decode(payload, layout)
	if err != nil {
		return 0, err
	}

	return d.At(x, y)
}

// DecodeBand decodes payload and returns every pixel in row-major order.
func DecodeBand(payload []byte, layout Layout) ([]float64, error) {
	d, err := Decode(payload, layout)
	if err != nil {
		return nil, err
	}

	return d.Values(), nil
}
