package encoding

import (
	"fmt"
	"iter"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/raquet/endian"
	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
	"github.com/arloliu/raquet/internal/buffer"
)

// Number is the set of Go numeric types that can be written as pixels.
type Number interface {
	constraints.Integer | constraints.Float
}

// widenFunc reads one pixel from the first bytes of b.
type widenFunc func(b []byte, engine endian.EndianEngine) float64

func widenUint8(b []byte, _ endian.EndianEngine) float64 { return float64(b[0]) }
func widenInt8(b []byte, _ endian.EndianEngine) float64  { return float64(int8(b[0])) }

func widenUint16(b []byte, e endian.EndianEngine) float64 { return float64(e.Uint16(b)) }
func widenInt16(b []byte, e endian.EndianEngine) float64  { return float64(int16(e.Uint16(b))) }

func widenUint32(b []byte, e endian.EndianEngine) float64 { return float64(e.Uint32(b)) }
func widenInt32(b []byte, e endian.EndianEngine) float64  { return float64(int32(e.Uint32(b))) }

func widenUint64(b []byte, e endian.EndianEngine) float64 { return float64(e.Uint64(b)) }
func widenInt64(b []byte, e endian.EndianEngine) float64  { return float64(int64(e.Uint64(b))) }

func widenFloat32(b []byte, e endian.EndianEngine) float64 {
	return float64(math.Float32frombits(e.Uint32(b)))
}

func widenFloat64(b []byte, e endian.EndianEngine) float64 {
	return math.Float64frombits(e.Uint64(b))
}

func widenerFor(dt format.DataType) widenFunc {
	switch dt {
	case format.DataTypeUint8:
		return widenUint8
	case format.DataTypeInt8:
		return widenInt8
	case format.DataTypeUint16:
		return widenUint16
	case format.DataTypeInt16:
		return widenInt16
	case format.DataTypeUint32:
		return widenUint32
	case format.DataTypeInt32:
		return widenInt32
	case format.DataTypeUint64:
		return widenUint64
	case format.DataTypeInt64:
		return widenInt64
	case format.DataTypeFloat32:
		return widenFloat32
	case format.DataTypeFloat64:
		return widenFloat64
	default:
		return nil
	}
}

// PixelDecoder decodes fixed-width pixels of one data type to float64.
//
// The decoder is immutable and stateless, so it is passed by value.
type PixelDecoder struct {
	engine   endian.EndianEngine
	widen    widenFunc
	dataType format.DataType
	size     int
}

var _ ColumnarDecoder[float64] = PixelDecoder{}

// NewPixelDecoder creates a decoder for pixels of type dt stored in the byte
// order of engine. A nil engine means little-endian.
//
// Returns an error wrapping errs.ErrUnsupportedDataType when dt is not a
// supported pixel encoding.
func NewPixelDecoder(dt format.DataType, engine endian.EndianEngine) (PixelDecoder, error) {
	widen := widenerFor(dt)
	if widen == nil {
		return PixelDecoder{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, dt)
	}

	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return PixelDecoder{
		engine:   engine,
		widen:    widen,
		dataType: dt,
		size:     dt.Size(),
	}, nil
}

// DataType returns the pixel data type.
func (d PixelDecoder) DataType() format.DataType {
	return d.dataType
}

// Size returns the width of one pixel in bytes.
func (d PixelDecoder) Size() int {
	return d.size
}

// RequiredBytes returns the number of bytes holding count pixels.
func (d PixelDecoder) RequiredBytes(count int) int {
	return count * d.size
}

// All yields count widened pixels in storage order.
//
// The iterator yields nothing if data is shorter than count pixels.
func (d PixelDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || len(data) < count*d.size {
			return
		}

		for off := 0; off < count*d.size; off += d.size {
			if !yield(d.widen(data[off:off+d.size], d.engine)) {
				return
			}
		}
	}
}

// At returns the widened pixel at index.
func (d PixelDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	start := index * d.size
	if start+d.size > len(data) {
		return 0, false
	}

	return d.widen(data[start:start+d.size], d.engine), true
}

// AppendValues narrows values to dt and appends them to dst in the byte order
// of engine. A nil engine means little-endian.
//
// Values outside the range of dt are converted with Go's conversion rules;
// callers building tiles are expected to pass representable values.
func AppendValues[T Number](dst []byte, dt format.DataType, engine endian.EndianEngine, values ...T) ([]byte, error) {
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	switch dt {
	case format.DataTypeUint8:
		for _, v := range values {
			dst = append(dst, uint8(v))
		}
	case format.DataTypeInt8:
		for _, v := range values {
			dst = append(dst, byte(int8(v)))
		}
	case format.DataTypeUint16:
		for _, v := range values {
			dst = engine.AppendUint16(dst, uint16(v))
		}
	case format.DataTypeInt16:
		for _, v := range values {
			dst = engine.AppendUint16(dst, uint16(int16(v)))
		}
	case format.DataTypeUint32:
		for _, v := range values {
			dst = engine.AppendUint32(dst, uint32(v))
		}
	case format.DataTypeInt32:
		for _, v := range values {
			dst = engine.AppendUint32(dst, uint32(int32(v)))
		}
	case format.DataTypeUint64:
		for _, v := range values {
			dst = engine.AppendUint64(dst, uint64(v))
		}
	case format.DataTypeInt64:
		for _, v := range values {
			dst = engine.AppendUint64(dst, uint64(int64(v)))
		}
	case format.DataTypeFloat32:
		for _, v := range values {
			dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
		}
	case format.DataTypeFloat64:
		for _, v := range values {
			dst = engine.AppendUint64(dst, math.Float64bits(float64(v)))
		}
	default:
		return dst, fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, dt)
	}

	return dst, nil
}

// PixelEncoder writes float64 values as pixels of one data type.
//
// Note: The PixelEncoder is NOT thread-safe.
type PixelEncoder struct {
	buf      *buffer.ByteBuffer
	engine   endian.EndianEngine
	dataType format.DataType
	count    int
}

var _ ColumnarEncoder[float64] = (*PixelEncoder)(nil)

// NewPixelEncoder creates an encoder for pixels of type dt. capacity is the
// expected number of pixels and only sizes the initial buffer.
func NewPixelEncoder(dt format.DataType, engine endian.EndianEngine, capacity int) (*PixelEncoder, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedDataType, dt)
	}

	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	return &PixelEncoder{
		buf:      buffer.NewByteBuffer(capacity * dt.Size()),
		engine:   engine,
		dataType: dt,
	}, nil
}

// Write encodes a single pixel.
func (e *PixelEncoder) Write(val float64) {
	e.buf.Grow(e.dataType.Size())
	// dataType was validated in NewPixelEncoder, AppendValues cannot fail.
	e.buf.B, _ = AppendValues(e.buf.B, e.dataType, e.engine, val)
	e.count++
}

// WriteSlice encodes a slice of pixels.
func (e *PixelEncoder) WriteSlice(values []float64) {
	if len(values) == 0 {
		return
	}

	e.buf.Grow(len(values) * e.dataType.Size())
	e.buf.B, _ = AppendValues(e.buf.B, e.dataType, e.engine, values...)
	e.count += len(values)
}

// Bytes returns the encoded pixels.
func (e *PixelEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded pixels.
func (e *PixelEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded pixels.
func (e *PixelEncoder) Size() int {
	return e.buf.Len()
}

// Reset discards all encoded pixels.
func (e *PixelEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}
