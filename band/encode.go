package band

import (
	"fmt"

	"github.com/arloliu/raquet/compress"
	"github.com/arloliu/raquet/encoding"
	"github.com/arloliu/raquet/errs"
)

// Encode builds a band payload from values in row-major order.
//
// Values are narrowed to the layout's data type and compressed with its
// codec. len(values) must equal width*height.
func Encode(values []float64, layout Layout) ([]byte, error) {
	if err := checkEncode(len(values), layout); err != nil {
		return nil, err
	}

	enc, err := encoding.NewPixelEncoder(layout.DataType, layout.ByteOrder(), len(values))
	if err != nil {
		return nil, err
	}
	enc.WriteSlice(values)

	return compressPayload(enc.Bytes(), layout)
}

// EncodeValues is Encode for any numeric slice, e.g. the []uint16 of a
// sensor readout.
func EncodeValues[T encoding.Number](values []T, layout Layout) ([]byte, error) {
	if err := checkEncode(len(values), layout); err != nil {
		return nil, err
	}

	raw, err := encoding.AppendValues(make([]byte, 0, layout.RawSize()), layout.DataType, layout.ByteOrder(), values...)
	if err != nil {
		return nil, err
	}

	return compressPayload(raw, layout)
}

func checkEncode(n int, layout Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}

	if n != layout.Pixels() {
		return fmt.Errorf("%w: %d values for %dx%d band", errs.ErrInvalidDimensions, n, layout.Width, layout.Height)
	}

	return nil
}

func compressPayload(raw []byte, layout Layout) ([]byte, error) {
	codec, err := compress.GetCodec(layout.Compression)
	if err != nil {
		return nil, err
	}

	return codec.Compress(raw)
}
