package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/raquet/endian"
	"github.com/arloliu/raquet/errs"
	"github.com/arloliu/raquet/format"
)

var allDataTypes = []format.DataType{
	format.DataTypeUint8,
	format.DataTypeInt8,
	format.DataTypeUint16,
	format.DataTypeInt16,
	format.DataTypeUint32,
	format.DataTypeInt32,
	format.DataTypeUint64,
	format.DataTypeInt64,
	format.DataTypeFloat32,
	format.DataTypeFloat64,
}

// sampleValues returns values representable without loss in dt.
func sampleValues(dt format.DataType) []float64 {
	switch dt {
	case format.DataTypeUint8:
		return []float64{0, 1, 127, 255}
	case format.DataTypeInt8:
		return []float64{-128, -1, 0, 127}
	case format.DataTypeUint16:
		return []float64{0, 256, 65535, 1000}
	case format.DataTypeInt16:
		return []float64{-32768, -1, 0, 32767}
	case format.DataTypeUint32:
		return []float64{0, 70000, math.MaxUint32, 1}
	case format.DataTypeInt32:
		return []float64{math.MinInt32, -70000, 0, math.MaxInt32}
	case format.DataTypeUint64:
		return []float64{0, 1 << 40, 1 << 52, 7}
	case format.DataTypeInt64:
		return []float64{-(1 << 52), -1, 0, 1 << 52}
	case format.DataTypeFloat32:
		return []float64{-1.5, 0, 0.25, 1024.5}
	default:
		return []float64{-1e300, -0.1, 0, math.Pi}
	}
}

func TestPixelDecoder_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for _, dt := range allDataTypes {
		for name, engine := range engines {
			t.Run(dt.String()+"/"+name, func(t *testing.T) {
				values := sampleValues(dt)

				enc, err := NewPixelEncoder(dt, engine, len(values))
				require.NoError(t, err)
				enc.WriteSlice(values)
				require.Equal(t, len(values), enc.Len())
				require.Equal(t, len(values)*dt.Size(), enc.Size())

				dec, err := NewPixelDecoder(dt, engine)
				require.NoError(t, err)
				require.Equal(t, dt, dec.DataType())
				require.Equal(t, dt.Size(), dec.Size())

				got := slices.Collect(dec.All(enc.Bytes(), len(values)))
				require.Equal(t, values, got)

				for i, want := range values {
					v, ok := dec.At(enc.Bytes(), i, len(values))
					require.True(t, ok)
					require.Equal(t, want, v)
				}
			})
		}
	}
}

func TestPixelDecoder_SignHandling(t *testing.T) {
	le := endian.GetLittleEndianEngine()

	tests := []struct {
		name string
		dt   format.DataType
		raw  []byte
		want float64
	}{
		{name: "uint8 high bit", dt: format.DataTypeUint8, raw: []byte{0xFF}, want: 255},
		{name: "int8 high bit", dt: format.DataTypeInt8, raw: []byte{0xFF}, want: -1},
		{name: "uint16 high bit", dt: format.DataTypeUint16, raw: []byte{0x00, 0x80}, want: 32768},
		{name: "int16 high bit", dt: format.DataTypeInt16, raw: []byte{0x00, 0x80}, want: -32768},
		{name: "uint32 all ones", dt: format.DataTypeUint32, raw: []byte{0xFF, 0xFF, 0xFF, 0xFF}, want: 4294967295},
		{name: "int32 all ones", dt: format.DataTypeInt32, raw: []byte{0xFF, 0xFF, 0xFF, 0xFF}, want: -1},
		{name: "int64 all ones", dt: format.DataTypeInt64, raw: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := NewPixelDecoder(tt.dt, le)
			require.NoError(t, err)

			v, ok := dec.At(tt.raw, 0, 1)
			require.True(t, ok)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestPixelDecoder_ByteOrder(t *testing.T) {
	raw := []byte{0x01, 0x02}

	le, err := NewPixelDecoder(format.DataTypeUint16, endian.GetLittleEndianEngine())
	require.NoError(t, err)
	be, err := NewPixelDecoder(format.DataTypeUint16, endian.GetBigEndianEngine())
	require.NoError(t, err)

	v, _ := le.At(raw, 0, 1)
	require.Equal(t, float64(0x0201), v)
	v, _ = be.At(raw, 0, 1)
	require.Equal(t, float64(0x0102), v)
}

func TestPixelDecoder_NilEngineIsLittleEndian(t *testing.T) {
	dec, err := NewPixelDecoder(format.DataTypeUint16, nil)
	require.NoError(t, err)

	v, ok := dec.At([]byte{0x10, 0x00}, 0, 1)
	require.True(t, ok)
	require.Equal(t, float64(16), v)
}

func TestPixelDecoder_FloatNaN(t *testing.T) {
	raw, err := AppendValues(nil, format.DataTypeFloat32, nil, float32(math.NaN()), 1.0)
	require.NoError(t, err)

	dec, err := NewPixelDecoder(format.DataTypeFloat32, nil)
	require.NoError(t, err)

	got := slices.Collect(dec.All(raw, 2))
	require.Len(t, got, 2)
	require.True(t, math.IsNaN(got[0]))
	require.Equal(t, 1.0, got[1])
}

func TestPixelDecoder_Unsupported(t *testing.T) {
	for _, dt := range []format.DataType{0, 0xB, 0xFF} {
		_, err := NewPixelDecoder(dt, nil)
		require.ErrorIs(t, err, errs.ErrUnsupportedDataType)

		_, err = NewPixelEncoder(dt, nil, 1)
		require.ErrorIs(t, err, errs.ErrUnsupportedDataType)

		_, err = AppendValues[int](nil, dt, nil, 1)
		require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
	}
}

func TestPixelDecoder_Bounds(t *testing.T) {
	dec, err := NewPixelDecoder(format.DataTypeInt16, nil)
	require.NoError(t, err)

	raw, err := AppendValues(nil, format.DataTypeInt16, nil, 1, 2, 3)
	require.NoError(t, err)

	_, ok := dec.At(raw, -1, 3)
	require.False(t, ok)
	_, ok = dec.At(raw, 3, 3)
	require.False(t, ok)
	_, ok = dec.At(raw, 3, 4)
	require.False(t, ok, "index inside count but past data")

	require.Empty(t, slices.Collect(dec.All(raw, 4)), "short data yields nothing")
	require.Empty(t, slices.Collect(dec.All(raw, 0)))
	require.Equal(t, []float64{1, 2}, slices.Collect(dec.All(raw, 2)))
	require.Equal(t, 6, dec.RequiredBytes(3))
}

func TestPixelDecoder_AllEarlyStop(t *testing.T) {
	raw, err := AppendValues(nil, format.DataTypeUint8, nil, 1, 2, 3, 4)
	require.NoError(t, err)

	dec, err := NewPixelDecoder(format.DataTypeUint8, nil)
	require.NoError(t, err)

	var seen []float64
	for v := range dec.All(raw, 4) {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []float64{1, 2}, seen)
}

func TestAppendValues_Generic(t *testing.T) {
	raw, err := AppendValues(nil, format.DataTypeInt32, endian.GetBigEndianEngine(), int32(-2), int32(5))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFE, 0x00, 0x00, 0x00, 0x05}, raw)

	raw, err = AppendValues(raw[:0], format.DataTypeUint8, nil, uint16(7), uint16(9))
	require.NoError(t, err)
	require.Equal(t, []byte{7, 9}, raw)
}

func TestPixelEncoder_Reset(t *testing.T) {
	enc, err := NewPixelEncoder(format.DataTypeFloat64, nil, 0)
	require.NoError(t, err)

	enc.Write(1)
	enc.Write(2)
	require.Equal(t, 2, enc.Len())
	require.Equal(t, 16, enc.Size())

	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	enc.WriteSlice(nil)
	require.Equal(t, 0, enc.Len())
}

func BenchmarkPixelDecoder_All(b *testing.B) {
	const pixels = 256 * 256

	values := make([]float32, pixels)
	for i := range values {
		values[i] = float32(i % 1000)
	}
	raw, err := AppendValues(nil, format.DataTypeFloat32, nil, values...)
	require.NoError(b, err)

	dec, err := NewPixelDecoder(format.DataTypeFloat32, nil)
	require.NoError(b, err)

	b.SetBytes(int64(len(raw)))
	b.ReportAllocs()

	for b.Loop() {
		var sum float64
		for v := range dec.All(raw, pixels) {
			sum += v
		}
		_ = sum
	}
}
